package store

import (
	"context"
	"io"

	"github.com/beezetrack/beezetrack-server/models"
)

// UserRepository is the data-access contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with the
	// store-assigned ID. Returns ErrEmailAlreadyExists when the email
	// unique index is violated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks an account up by its unique email.
	// Returns ErrNoUserWasFound when no row matches.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks an account up by its primary key.
	// Returns ErrNoUserWasFound when no row matches.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile overwrites only the fields present in patch.
	// Email uniqueness is NOT re-checked here; a conflicting email
	// surfaces as a raw constraint error from the driver.
	UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// DeliveryRepository is the data-access contract for deliveries and their
// append-only status-update trail.
type DeliveryRepository interface {
	// CreateDelivery inserts the delivery and its synthetic initial
	// update as two separate statements (no transaction; see the
	// concurrency notes in the package documentation).
	CreateDelivery(ctx context.Context, delivery models.Delivery, initial models.DeliveryUpdate) (models.Delivery, error)

	// FindDeliveryByID returns the delivery with its updates loaded,
	// newest first. Returns ErrDeliveryNotFound when no row matches.
	FindDeliveryByID(ctx context.Context, deliveryID int64) (models.Delivery, error)

	// FindDeliveryByTrackingNumber is the public tracking lookup.
	// Returns ErrDeliveryNotFound when no row matches.
	FindDeliveryByTrackingNumber(ctx context.Context, trackingNumber string) (models.Delivery, error)

	// FindDeliveriesByUserID returns every delivery owned by the user,
	// ordered by the human-readable date string descending, updates
	// loaded for each.
	FindDeliveriesByUserID(ctx context.Context, userID int64) ([]models.Delivery, error)

	// AppendStatusUpdate overwrites the delivery's current status and
	// appends a new update row.
	AppendStatusUpdate(ctx context.Context, deliveryID int64, status string, update models.DeliveryUpdate) error

	// UpdateImageURL persists the static path of an uploaded package image.
	UpdateImageURL(ctx context.Context, deliveryID int64, imageURL string) error

	// LoadUpdates returns the delivery's update trail, newest first.
	LoadUpdates(ctx context.Context, deliveryID int64) ([]models.DeliveryUpdate, error)

	// GetDeliveryCounts returns per-status counters for the user.
	// Only the count fields of the result are populated.
	GetDeliveryCounts(ctx context.Context, userID int64) (models.Statistics, error)
}

// ImageFileStorage persists uploaded package images outside the database.
type ImageFileStorage interface {
	// SaveImage writes the uploaded content under the given filename
	// inside the storage root and returns the public URL path the file
	// is served back from.
	SaveImage(ctx context.Context, filename string, content io.Reader) (string, error)
}
