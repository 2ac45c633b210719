package service

import (
	"context"
	"io"

	"github.com/beezetrack/beezetrack-server/models"
)

// AuthService owns user accounts and the JWT session token lifecycle.
type AuthService interface {
	// RegisterUser validates the registration payload, hashes the
	// password, and persists a new account.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates an existing account by email and password.
	// The failure is deliberately generic: unknown email and wrong
	// password are indistinguishable to the caller.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// GetUserByID resolves an authenticated identity to its account.
	GetUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile overwrites only the fields present in patch and
	// returns the refreshed account.
	UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) (models.User, error)

	// UpdatePassword verifies the current password and replaces it with
	// a freshly hashed new one.
	UpdatePassword(ctx context.Context, userID int64, req models.UpdatePasswordRequest) error

	// CreateToken issues a signed session token for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates and parses a raw JWT string.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DeliveryService owns deliveries, their status trail, statistics, and
// package images.
type DeliveryService interface {
	// CreateDelivery validates the payload, generates a tracking number,
	// and persists the delivery with its synthetic initial update.
	CreateDelivery(ctx context.Context, userID int64, req models.CreateDeliveryRequest) (models.Delivery, error)

	// ListUserDeliveries returns all deliveries owned by the caller.
	ListUserDeliveries(ctx context.Context, userID int64) ([]models.Delivery, error)

	// GetUserDelivery returns a single delivery after an ownership check.
	GetUserDelivery(ctx context.Context, userID, deliveryID int64) (models.Delivery, error)

	// TrackDelivery is the public, unauthenticated lookup by tracking
	// number; the returned view has the owner identity stripped.
	TrackDelivery(ctx context.Context, trackingNumber string) (models.Delivery, error)

	// UpdateDeliveryStatus appends a status update after ownership and
	// whitelist checks and returns the refreshed delivery.
	UpdateDeliveryStatus(ctx context.Context, userID, deliveryID int64, req models.UpdateStatusRequest) (models.Delivery, error)

	// GetUserStatistics returns the caller's delivery counters plus the
	// documented placeholder metrics.
	GetUserStatistics(ctx context.Context, userID int64) (models.Statistics, error)

	// UploadPackageImage validates and stores a package image and
	// persists its reference on the delivery. Returns the public image
	// URL and the refreshed delivery.
	UploadPackageImage(ctx context.Context, userID, deliveryID int64, filename string, content io.Reader) (string, models.Delivery, error)
}
