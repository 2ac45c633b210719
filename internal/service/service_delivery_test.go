// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/beezetrack/beezetrack-server/internal/utils"
	"github.com/beezetrack/beezetrack-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.DeliveryRepository
// ─────────────────────────────────────────────

type mockDeliveryRepository struct {
	createDeliveryFn               func(ctx context.Context, delivery models.Delivery, initial models.DeliveryUpdate) (models.Delivery, error)
	findDeliveryByIDFn             func(ctx context.Context, deliveryID int64) (models.Delivery, error)
	findDeliveryByTrackingNumberFn func(ctx context.Context, trackingNumber string) (models.Delivery, error)
	findDeliveriesByUserIDFn       func(ctx context.Context, userID int64) ([]models.Delivery, error)
	appendStatusUpdateFn           func(ctx context.Context, deliveryID int64, status string, update models.DeliveryUpdate) error
	updateImageURLFn               func(ctx context.Context, deliveryID int64, imageURL string) error
	loadUpdatesFn                  func(ctx context.Context, deliveryID int64) ([]models.DeliveryUpdate, error)
	getDeliveryCountsFn            func(ctx context.Context, userID int64) (models.Statistics, error)
}

func (m *mockDeliveryRepository) CreateDelivery(ctx context.Context, delivery models.Delivery, initial models.DeliveryUpdate) (models.Delivery, error) {
	if m.createDeliveryFn != nil {
		return m.createDeliveryFn(ctx, delivery, initial)
	}
	return delivery, nil
}

func (m *mockDeliveryRepository) FindDeliveryByID(ctx context.Context, deliveryID int64) (models.Delivery, error) {
	if m.findDeliveryByIDFn != nil {
		return m.findDeliveryByIDFn(ctx, deliveryID)
	}
	return models.Delivery{}, nil
}

func (m *mockDeliveryRepository) FindDeliveryByTrackingNumber(ctx context.Context, trackingNumber string) (models.Delivery, error) {
	if m.findDeliveryByTrackingNumberFn != nil {
		return m.findDeliveryByTrackingNumberFn(ctx, trackingNumber)
	}
	return models.Delivery{}, nil
}

func (m *mockDeliveryRepository) FindDeliveriesByUserID(ctx context.Context, userID int64) ([]models.Delivery, error) {
	if m.findDeliveriesByUserIDFn != nil {
		return m.findDeliveriesByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockDeliveryRepository) AppendStatusUpdate(ctx context.Context, deliveryID int64, status string, update models.DeliveryUpdate) error {
	if m.appendStatusUpdateFn != nil {
		return m.appendStatusUpdateFn(ctx, deliveryID, status, update)
	}
	return nil
}

func (m *mockDeliveryRepository) UpdateImageURL(ctx context.Context, deliveryID int64, imageURL string) error {
	if m.updateImageURLFn != nil {
		return m.updateImageURLFn(ctx, deliveryID, imageURL)
	}
	return nil
}

func (m *mockDeliveryRepository) LoadUpdates(ctx context.Context, deliveryID int64) ([]models.DeliveryUpdate, error) {
	if m.loadUpdatesFn != nil {
		return m.loadUpdatesFn(ctx, deliveryID)
	}
	return nil, nil
}

func (m *mockDeliveryRepository) GetDeliveryCounts(ctx context.Context, userID int64) (models.Statistics, error) {
	if m.getDeliveryCountsFn != nil {
		return m.getDeliveryCountsFn(ctx, userID)
	}
	return models.Statistics{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.ImageFileStorage
// ─────────────────────────────────────────────

type mockImageStorage struct {
	saveImageFn func(ctx context.Context, filename string, content io.Reader) (string, error)
}

func (m *mockImageStorage) SaveImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	if m.saveImageFn != nil {
		return m.saveImageFn(ctx, filename, content)
	}
	return store.PublicUploadsPrefix + "/" + filename, nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestDeliveryService(repo *mockDeliveryRepository, images *mockImageStorage) *deliveryService {
	if images == nil {
		images = &mockImageStorage{}
	}
	return &deliveryService{
		deliveryRepository: repo,
		imageStorage:       images,
		uuidGenerator:      utils.NewUUIDGenerator(),
		logger:             logger.Nop(),
		now: func() time.Time {
			return time.Date(2026, time.August, 28, 14, 45, 0, 0, time.UTC)
		},
	}
}

var trackingNumberPattern = regexp.MustCompile(`^BZ\d{6}$`)

// ─────────────────────────────────────────────
// CreateDelivery
// ─────────────────────────────────────────────

func TestDeliveryService_CreateDelivery_Success(t *testing.T) {
	var captured models.Delivery
	var capturedInitial models.DeliveryUpdate
	repo := &mockDeliveryRepository{
		createDeliveryFn: func(_ context.Context, delivery models.Delivery, initial models.DeliveryUpdate) (models.Delivery, error) {
			captured = delivery
			capturedInitial = initial
			delivery.ID = 1
			delivery.Updates = []models.DeliveryUpdate{initial}
			return delivery, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	created, err := svc.CreateDelivery(context.Background(), 7, models.CreateDeliveryRequest{
		PackageType: "Box",
		Weight:      "2kg",
		Dimensions:  "30x20x10",
		FromAddress: "Belize City",
		ToAddress:   "San Ignacio",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Regexp(t, trackingNumberPattern, captured.TrackingNumber)
	assert.Equal(t, models.StatusPending, captured.Status)
	assert.Equal(t, int64(7), captured.UserID)
	assert.Equal(t, "August 28, 2026", captured.Date)

	assert.Equal(t, models.StatusPending, capturedInitial.Status)
	assert.Equal(t, "August 28, 2026", capturedInitial.Date)
	assert.Equal(t, "02:45 PM", capturedInitial.Time)
	assert.Equal(t, "Your package has been scheduled for pickup.", capturedInitial.Description)
}

func TestDeliveryService_CreateDelivery_MissingFieldOrder(t *testing.T) {
	svc := newTestDeliveryService(&mockDeliveryRepository{}, nil)

	full := models.CreateDeliveryRequest{
		PackageType: "Box",
		Weight:      "2kg",
		Dimensions:  "30x20x10",
		FromAddress: "Belize City",
		ToAddress:   "San Ignacio",
	}

	tests := []struct {
		field string
		blank func(r *models.CreateDeliveryRequest)
	}{
		{"packageType", func(r *models.CreateDeliveryRequest) { r.PackageType = "" }},
		{"weight", func(r *models.CreateDeliveryRequest) { r.Weight = "" }},
		{"dimensions", func(r *models.CreateDeliveryRequest) { r.Dimensions = "" }},
		{"from", func(r *models.CreateDeliveryRequest) { r.FromAddress = "" }},
		{"to", func(r *models.CreateDeliveryRequest) { r.ToAddress = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			req := full
			tt.blank(&req)

			_, err := svc.CreateDelivery(context.Background(), 7, req)
			require.ErrorIs(t, err, ErrMissingRequiredField)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

// ─────────────────────────────────────────────
// GetUserDelivery / ownership
// ─────────────────────────────────────────────

func TestDeliveryService_GetUserDelivery_Success(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	delivery, err := svc.GetUserDelivery(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), delivery.ID)
}

func TestDeliveryService_GetUserDelivery_NotFoundBeforeOwnership(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, _ int64) (models.Delivery, error) {
			return models.Delivery{}, store.ErrDeliveryNotFound
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, err := svc.GetUserDelivery(context.Background(), 7, 99)
	require.ErrorIs(t, err, store.ErrDeliveryNotFound)
	require.NotErrorIs(t, err, ErrNotDeliveryOwner)
}

func TestDeliveryService_GetUserDelivery_ForeignDelivery(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 8}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, err := svc.GetUserDelivery(context.Background(), 7, 1)
	require.ErrorIs(t, err, ErrNotDeliveryOwner)
}

// ─────────────────────────────────────────────
// TrackDelivery
// ─────────────────────────────────────────────

func TestDeliveryService_TrackDelivery_StripsOwner(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByTrackingNumberFn: func(_ context.Context, trackingNumber string) (models.Delivery, error) {
			return models.Delivery{ID: 1, TrackingNumber: trackingNumber, UserID: 7}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	delivery, err := svc.TrackDelivery(context.Background(), "BZ123456")
	require.NoError(t, err)
	assert.Equal(t, "BZ123456", delivery.TrackingNumber)
	assert.Zero(t, delivery.UserID, "public view must not expose the owner")
}

func TestDeliveryService_TrackDelivery_EmptyTrackingNumber(t *testing.T) {
	svc := newTestDeliveryService(&mockDeliveryRepository{}, nil)

	_, err := svc.TrackDelivery(context.Background(), "")
	require.ErrorIs(t, err, ErrTrackingNumberRequired)
}

func TestDeliveryService_TrackDelivery_NotFound(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByTrackingNumberFn: func(_ context.Context, _ string) (models.Delivery, error) {
			return models.Delivery{}, store.ErrDeliveryNotFound
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, err := svc.TrackDelivery(context.Background(), "BZ000000")
	require.ErrorIs(t, err, store.ErrDeliveryNotFound)
}

// ─────────────────────────────────────────────
// UpdateDeliveryStatus
// ─────────────────────────────────────────────

func TestDeliveryService_UpdateDeliveryStatus_AutoDescription(t *testing.T) {
	var appended models.DeliveryUpdate
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7, Status: models.StatusPending}, nil
		},
		appendStatusUpdateFn: func(_ context.Context, _ int64, _ string, update models.DeliveryUpdate) error {
			appended = update
			return nil
		},
		loadUpdatesFn: func(_ context.Context, _ int64) ([]models.DeliveryUpdate, error) {
			return []models.DeliveryUpdate{appended}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	updated, err := svc.UpdateDeliveryStatus(context.Background(), 7, 1, models.UpdateStatusRequest{
		Status: models.StatusInTransit,
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusInTransit, updated.Status)
	assert.Equal(t, "Your package status has been updated to In-Transit.", appended.Description)
	assert.Equal(t, "02:45 PM", appended.Time)
	require.Len(t, updated.Updates, 1)
}

func TestDeliveryService_UpdateDeliveryStatus_CustomDescription(t *testing.T) {
	var appended models.DeliveryUpdate
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7}, nil
		},
		appendStatusUpdateFn: func(_ context.Context, _ int64, _ string, update models.DeliveryUpdate) error {
			appended = update
			return nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, err := svc.UpdateDeliveryStatus(context.Background(), 7, 1, models.UpdateStatusRequest{
		Status:      models.StatusDelivered,
		Description: "Left at the front desk.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Left at the front desk.", appended.Description)
}

func TestDeliveryService_UpdateDeliveryStatus_Validation(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, err := svc.UpdateDeliveryStatus(context.Background(), 7, 1, models.UpdateStatusRequest{})
	require.ErrorIs(t, err, ErrStatusRequired)

	_, err = svc.UpdateDeliveryStatus(context.Background(), 7, 1, models.UpdateStatusRequest{Status: "Lost"})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeliveryService_UpdateDeliveryStatus_OwnershipCheckedFirst(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 8}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	// even an invalid status reports the ownership violation first
	_, err := svc.UpdateDeliveryStatus(context.Background(), 7, 1, models.UpdateStatusRequest{Status: "Lost"})
	require.ErrorIs(t, err, ErrNotDeliveryOwner)
}

// ─────────────────────────────────────────────
// GetUserStatistics
// ─────────────────────────────────────────────

func TestDeliveryService_GetUserStatistics_PlaceholdersWithDelivered(t *testing.T) {
	repo := &mockDeliveryRepository{
		getDeliveryCountsFn: func(_ context.Context, _ int64) (models.Statistics, error) {
			return models.Statistics{
				TotalDeliveries:     5,
				PendingDeliveries:   2,
				InTransitDeliveries: 1,
				DeliveredDeliveries: 2,
			}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	stats, err := svc.GetUserStatistics(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 95, stats.OnTimeDeliveryRate)
	assert.Equal(t, "2.5 days", stats.AverageDeliveryTime)
	assert.InDelta(t, 4.8, stats.CustomerSatisfaction, 0.001)
}

func TestDeliveryService_GetUserStatistics_PlaceholdersWithoutDelivered(t *testing.T) {
	repo := &mockDeliveryRepository{
		getDeliveryCountsFn: func(_ context.Context, _ int64) (models.Statistics, error) {
			return models.Statistics{TotalDeliveries: 3, PendingDeliveries: 3}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	stats, err := svc.GetUserStatistics(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, stats.OnTimeDeliveryRate)
	assert.Equal(t, "0 days", stats.AverageDeliveryTime)
	assert.Zero(t, stats.CustomerSatisfaction)
}

// ─────────────────────────────────────────────
// UploadPackageImage
// ─────────────────────────────────────────────

func TestDeliveryService_UploadPackageImage_Success(t *testing.T) {
	var storedName string
	images := &mockImageStorage{
		saveImageFn: func(_ context.Context, filename string, content io.Reader) (string, error) {
			storedName = filename
			return store.PublicUploadsPrefix + "/" + filename, nil
		},
	}

	var persistedURL string
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7, ImageURL: persistedURL}, nil
		},
		updateImageURLFn: func(_ context.Context, _ int64, imageURL string) error {
			persistedURL = imageURL
			return nil
		},
	}
	svc := newTestDeliveryService(repo, images)

	imageURL, delivery, err := svc.UploadPackageImage(context.Background(), 7, 1, "my box photo.PNG", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(imageURL, store.PublicUploadsPrefix+"/"))
	assert.True(t, strings.HasSuffix(storedName, "_my_box_photo.PNG"), "stored name %q must keep the sanitized original", storedName)
	assert.Equal(t, imageURL, delivery.ImageURL)
}

func TestDeliveryService_UploadPackageImage_Validation(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 7}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, _, err := svc.UploadPackageImage(context.Background(), 7, 1, "", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrNoImageSelected)

	_, _, err = svc.UploadPackageImage(context.Background(), 7, 1, "report.pdf", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)

	_, _, err = svc.UploadPackageImage(context.Background(), 7, 1, "noextension", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
}

func TestDeliveryService_UploadPackageImage_ForeignDelivery(t *testing.T) {
	repo := &mockDeliveryRepository{
		findDeliveryByIDFn: func(_ context.Context, deliveryID int64) (models.Delivery, error) {
			return models.Delivery{ID: deliveryID, UserID: 8}, nil
		},
	}
	svc := newTestDeliveryService(repo, nil)

	_, _, err := svc.UploadPackageImage(context.Background(), 7, 1, "box.png", strings.NewReader("x"))
	require.ErrorIs(t, err, ErrNotDeliveryOwner)
}

// ─────────────────────────────────────────────
// generateTrackingNumber
// ─────────────────────────────────────────────

func TestGenerateTrackingNumber_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, trackingNumberPattern, generateTrackingNumber())
	}
}
