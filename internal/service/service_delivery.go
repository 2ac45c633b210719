// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/beezetrack/beezetrack-server/internal/utils"
	"github.com/beezetrack/beezetrack-server/models"
)

const (
	// trackingPrefix and trackingDigits define the public tracking number
	// format: two fixed letters followed by exactly six random digits.
	// Collisions are not checked; uniqueness is probabilistic and backed
	// by the unique index on the column.
	trackingPrefix = "BZ"
	trackingDigits = 6

	// deliveryDateLayout is the human-readable date stored on deliveries
	// and their updates. Delivery listings sort by this string.
	deliveryDateLayout = "January 02, 2006"

	// updateTimeLayout is the wall-clock time stored on update records.
	updateTimeLayout = "03:04 PM"

	initialUpdateDescription = "Your package has been scheduled for pickup."
)

// Allowed package-image extensions, in the order they are reported back
// in validation messages.
var allowedImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

// deliveryService is the concrete implementation of DeliveryService. It
// owns tracking-number generation, the status whitelist, the statistics
// placeholders, and package-image validation; persistence is delegated to
// a DeliveryRepository and an ImageFileStorage.
type deliveryService struct {
	deliveryRepository store.DeliveryRepository
	imageStorage       store.ImageFileStorage
	uuidGenerator      *utils.UUIDGenerator
	logger             *logger.Logger

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewDeliveryService constructs a DeliveryService wired to the given
// repository and image storage.
func NewDeliveryService(deliveryRepository store.DeliveryRepository, imageStorage store.ImageFileStorage, logger *logger.Logger) DeliveryService {
	return &deliveryService{
		deliveryRepository: deliveryRepository,
		imageStorage:       imageStorage,
		uuidGenerator:      utils.NewUUIDGenerator(),
		logger:             logger,
		now:                time.Now,
	}
}

// CreateDelivery validates the payload, generates a tracking number, and
// persists the delivery together with its synthetic initial "Pending"
// update.
//
// Returns the full delivery view (updates newest first) or
// ErrMissingRequiredField wrapped with the offending field name.
func (d *deliveryService) CreateDelivery(ctx context.Context, userID int64, req models.CreateDeliveryRequest) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	if field, ok := firstMissingField(
		requiredField{"packageType", req.PackageType},
		requiredField{"weight", req.Weight},
		requiredField{"dimensions", req.Dimensions},
		requiredField{"from", req.FromAddress},
		requiredField{"to", req.ToAddress},
	); ok {
		log.Error().Str("field", field).Msg("delivery payload is missing a required field")
		return models.Delivery{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, field)
	}

	now := d.now()
	delivery := models.Delivery{
		TrackingNumber: generateTrackingNumber(),
		PackageType:    req.PackageType,
		Weight:         req.Weight,
		Dimensions:     req.Dimensions,
		FromAddress:    req.FromAddress,
		ToAddress:      req.ToAddress,
		Date:           now.Format(deliveryDateLayout),
		Status:         models.StatusPending,
		UserID:         userID,
	}

	initial := models.DeliveryUpdate{
		Status:      models.StatusPending,
		Date:        delivery.Date,
		Time:        now.Format(updateTimeLayout),
		Description: initialUpdateDescription,
	}

	createdDelivery, err := d.deliveryRepository.CreateDelivery(ctx, delivery, initial)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("delivery creation ended with error")
		return models.Delivery{}, fmt.Errorf("delivery creation ended with error: %w", err)
	}

	return createdDelivery, nil
}

// ListUserDeliveries returns all deliveries owned by the caller, ordered
// by the stored date string descending.
func (d *deliveryService) ListUserDeliveries(ctx context.Context, userID int64) ([]models.Delivery, error) {
	log := logger.FromContext(ctx)

	deliveries, err := d.deliveryRepository.FindDeliveriesByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("listing deliveries failed")
		return nil, fmt.Errorf("listing deliveries failed: %w", err)
	}

	return deliveries, nil
}

// GetUserDelivery returns the delivery after verifying ownership.
//
// Existence is checked before ownership, so a missing delivery yields a
// wrapped store.ErrDeliveryNotFound and a foreign one ErrNotDeliveryOwner.
func (d *deliveryService) GetUserDelivery(ctx context.Context, userID, deliveryID int64) (models.Delivery, error) {
	return d.findOwnedDelivery(ctx, userID, deliveryID)
}

// TrackDelivery is the public lookup by tracking number. The returned view
// has the owning-user identity stripped.
//
// Returns ErrTrackingNumberRequired on an empty tracking number or a
// wrapped store.ErrDeliveryNotFound when nothing matches.
func (d *deliveryService) TrackDelivery(ctx context.Context, trackingNumber string) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	if trackingNumber == "" {
		log.Error().Msg("tracking request without tracking number")
		return models.Delivery{}, ErrTrackingNumberRequired
	}

	delivery, err := d.deliveryRepository.FindDeliveryByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		log.Err(err).Str("tracking_number", trackingNumber).Msg("tracking lookup failed")
		return models.Delivery{}, fmt.Errorf("tracking lookup failed: %w", err)
	}

	return delivery.PublicView(), nil
}

// UpdateDeliveryStatus appends a status update to an owned delivery and
// overwrites its current status. Any status may follow any other; there is
// no transition state machine, only the four-label whitelist.
//
// When the request carries no description, an auto-generated one is stored.
// Returns the refreshed delivery with updates reloaded, newest first.
func (d *deliveryService) UpdateDeliveryStatus(ctx context.Context, userID, deliveryID int64, req models.UpdateStatusRequest) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	delivery, err := d.findOwnedDelivery(ctx, userID, deliveryID)
	if err != nil {
		return models.Delivery{}, err
	}

	if req.Status == "" {
		log.Error().Msg("status update without status")
		return models.Delivery{}, ErrStatusRequired
	}
	if !models.IsValidStatus(req.Status) {
		log.Error().Str("status", req.Status).Msg("status is not in the whitelist")
		return models.Delivery{}, ErrInvalidStatus
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Your package status has been updated to %s.", req.Status)
	}

	now := d.now()
	update := models.DeliveryUpdate{
		Status:      req.Status,
		Date:        now.Format(deliveryDateLayout),
		Time:        now.Format(updateTimeLayout),
		Description: description,
	}

	if err := d.deliveryRepository.AppendStatusUpdate(ctx, deliveryID, req.Status, update); err != nil {
		log.Err(err).Int64("delivery_id", deliveryID).Msg("appending status update failed")
		return models.Delivery{}, fmt.Errorf("appending status update failed: %w", err)
	}

	delivery.Status = req.Status
	updates, err := d.deliveryRepository.LoadUpdates(ctx, deliveryID)
	if err != nil {
		log.Err(err).Int64("delivery_id", deliveryID).Msg("reloading updates failed")
		return models.Delivery{}, fmt.Errorf("reloading updates failed: %w", err)
	}
	delivery.Updates = updates

	return delivery, nil
}

// GetUserStatistics returns the caller's per-status counters. The rate,
// average-time, and satisfaction metrics are fixed placeholder constants
// activated once at least one delivery is delivered; they are not derived
// from real timestamps.
func (d *deliveryService) GetUserStatistics(ctx context.Context, userID int64) (models.Statistics, error) {
	log := logger.FromContext(ctx)

	stats, err := d.deliveryRepository.GetDeliveryCounts(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("loading delivery counts failed")
		return models.Statistics{}, fmt.Errorf("loading delivery counts failed: %w", err)
	}

	stats.AverageDeliveryTime = "0 days"
	if stats.DeliveredDeliveries > 0 {
		stats.OnTimeDeliveryRate = 95
		stats.AverageDeliveryTime = "2.5 days"
		stats.CustomerSatisfaction = 4.8
	}

	return stats, nil
}

// UploadPackageImage validates the uploaded file, stores it under a
// collision-resistant name, and persists the resulting public path on the
// delivery.
//
// Returns:
//   - ErrNoImageSelected if the filename is empty.
//   - ErrFileTypeNotAllowed if the extension is not png/jpg/jpeg/gif.
//   - ErrNotDeliveryOwner / wrapped store.ErrDeliveryNotFound from the
//     ownership check.
func (d *deliveryService) UploadPackageImage(ctx context.Context, userID, deliveryID int64, filename string, content io.Reader) (string, models.Delivery, error) {
	log := logger.FromContext(ctx)

	if _, err := d.findOwnedDelivery(ctx, userID, deliveryID); err != nil {
		return "", models.Delivery{}, err
	}

	if filename == "" {
		log.Error().Msg("image upload with empty filename")
		return "", models.Delivery{}, ErrNoImageSelected
	}
	if !isAllowedImageExtension(filename) {
		log.Error().Str("filename", filename).Msg("image upload with disallowed extension")
		return "", models.Delivery{}, ErrFileTypeNotAllowed
	}

	storedName := d.uuidGenerator.Generate() + "_" + utils.SanitizeFilename(filename)
	imageURL, err := d.imageStorage.SaveImage(ctx, storedName, content)
	if err != nil {
		log.Err(err).Str("filename", storedName).Msg("storing image failed")
		return "", models.Delivery{}, fmt.Errorf("storing image failed: %w", err)
	}

	// The record update is not rolled back if it fails after the file is
	// written; orphaned files are left behind.
	if err := d.deliveryRepository.UpdateImageURL(ctx, deliveryID, imageURL); err != nil {
		log.Err(err).Int64("delivery_id", deliveryID).Msg("persisting image url failed")
		return "", models.Delivery{}, fmt.Errorf("persisting image url failed: %w", err)
	}

	refreshed, err := d.deliveryRepository.FindDeliveryByID(ctx, deliveryID)
	if err != nil {
		log.Err(err).Int64("delivery_id", deliveryID).Msg("reloading delivery failed")
		return "", models.Delivery{}, fmt.Errorf("reloading delivery failed: %w", err)
	}

	return imageURL, refreshed, nil
}

// findOwnedDelivery loads a delivery and verifies the caller owns it.
// Existence is checked first: a missing delivery is not-found, a foreign
// one is an ownership violation.
func (d *deliveryService) findOwnedDelivery(ctx context.Context, userID, deliveryID int64) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	delivery, err := d.deliveryRepository.FindDeliveryByID(ctx, deliveryID)
	if err != nil {
		log.Err(err).Int64("delivery_id", deliveryID).Msg("delivery lookup failed")
		return models.Delivery{}, fmt.Errorf("delivery lookup failed: %w", err)
	}

	if delivery.UserID != userID {
		log.Error().Int64("delivery_id", deliveryID).Int64("owner_id", delivery.UserID).Int64("caller_id", userID).Msg("caller is not the delivery owner")
		return models.Delivery{}, ErrNotDeliveryOwner
	}

	return delivery, nil
}

// generateTrackingNumber produces a "BZ" + 6-digit public identifier.
func generateTrackingNumber() string {
	digits := make([]byte, trackingDigits)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}

	return trackingPrefix + string(digits)
}

func isAllowedImageExtension(filename string) bool {
	ext := utils.FileExtension(filename)
	for _, allowed := range allowedImageExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
