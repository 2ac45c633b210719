package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/service"
	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/beezetrack/beezetrack-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock DeliveryService
// ─────────────────────────────────────────────

type mockDeliveryService struct {
	createDeliveryFn       func(ctx context.Context, userID int64, req models.CreateDeliveryRequest) (models.Delivery, error)
	listUserDeliveriesFn   func(ctx context.Context, userID int64) ([]models.Delivery, error)
	getUserDeliveryFn      func(ctx context.Context, userID, deliveryID int64) (models.Delivery, error)
	trackDeliveryFn        func(ctx context.Context, trackingNumber string) (models.Delivery, error)
	updateDeliveryStatusFn func(ctx context.Context, userID, deliveryID int64, req models.UpdateStatusRequest) (models.Delivery, error)
	getUserStatisticsFn    func(ctx context.Context, userID int64) (models.Statistics, error)
	uploadPackageImageFn   func(ctx context.Context, userID, deliveryID int64, filename string, content io.Reader) (string, models.Delivery, error)
}

func (m *mockDeliveryService) CreateDelivery(ctx context.Context, userID int64, req models.CreateDeliveryRequest) (models.Delivery, error) {
	return m.createDeliveryFn(ctx, userID, req)
}

func (m *mockDeliveryService) ListUserDeliveries(ctx context.Context, userID int64) ([]models.Delivery, error) {
	return m.listUserDeliveriesFn(ctx, userID)
}

func (m *mockDeliveryService) GetUserDelivery(ctx context.Context, userID, deliveryID int64) (models.Delivery, error) {
	return m.getUserDeliveryFn(ctx, userID, deliveryID)
}

func (m *mockDeliveryService) TrackDelivery(ctx context.Context, trackingNumber string) (models.Delivery, error) {
	return m.trackDeliveryFn(ctx, trackingNumber)
}

func (m *mockDeliveryService) UpdateDeliveryStatus(ctx context.Context, userID, deliveryID int64, req models.UpdateStatusRequest) (models.Delivery, error) {
	return m.updateDeliveryStatusFn(ctx, userID, deliveryID, req)
}

func (m *mockDeliveryService) GetUserStatistics(ctx context.Context, userID int64) (models.Statistics, error) {
	return m.getUserStatisticsFn(ctx, userID)
}

func (m *mockDeliveryService) UploadPackageImage(ctx context.Context, userID, deliveryID int64, filename string, content io.Reader) (string, models.Delivery, error) {
	return m.uploadPackageImageFn(ctx, userID, deliveryID, filename, content)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newRouterWithDelivery builds the full router around a DeliveryService
// mock so that route parameters and the auth middleware are exercised.
// The auth mock accepts any bearer token as user 7.
func newRouterWithDelivery(t *testing.T, delivery service.DeliveryService) http.Handler {
	t.Helper()
	svcs := &service.Services{
		AuthService:     &mockAuthService{},
		DeliveryService: delivery,
	}
	return NewHandler(svcs, t.TempDir(), logger.Nop()).Init()
}

func authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer any.jwt.token")
	return req
}

// multipartImage builds a multipart body carrying one "image" part.
func multipartImage(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// ─────────────────────────────────────────────
// createDelivery / listDeliveries
// ─────────────────────────────────────────────

func TestCreateDelivery_Success(t *testing.T) {
	delivery := &mockDeliveryService{
		createDeliveryFn: func(_ context.Context, userID int64, req models.CreateDeliveryRequest) (models.Delivery, error) {
			assert.Equal(t, int64(7), userID)
			return models.Delivery{ID: 1, TrackingNumber: "BZ123456", PackageType: req.PackageType, UserID: userID}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries", strings.NewReader(`{"packageType":"Box","weight":"2kg","dimensions":"30x20x10","from":"Belize City","to":"San Ignacio"}`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	d, ok := body["delivery"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BZ123456", d["trackingNumber"])
}

func TestCreateDelivery_MissingField(t *testing.T) {
	delivery := &mockDeliveryService{
		createDeliveryFn: func(_ context.Context, _ int64, _ models.CreateDeliveryRequest) (models.Delivery, error) {
			return models.Delivery{}, fmt.Errorf("%w: %s", service.ErrMissingRequiredField, "weight")
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries", strings.NewReader(`{}`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: weight", decodeBody(t, rec)["error"])
}

func TestListDeliveries_EmptyIsJSONArray(t *testing.T) {
	delivery := &mockDeliveryService{
		listUserDeliveriesFn: func(_ context.Context, _ int64) ([]models.Delivery, error) {
			return nil, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deliveries":[]}`, rec.Body.String())
}

// ─────────────────────────────────────────────
// getDelivery
// ─────────────────────────────────────────────

func TestGetDelivery_Success(t *testing.T) {
	delivery := &mockDeliveryService{
		getUserDeliveryFn: func(_ context.Context, userID, deliveryID int64) (models.Delivery, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, int64(42), deliveryID)
			return models.Delivery{ID: deliveryID, UserID: userID}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries/42", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDelivery_MalformedID(t *testing.T) {
	router := newRouterWithDelivery(t, &mockDeliveryService{})
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries/not-a-number", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Delivery not found", decodeBody(t, rec)["error"])
}

func TestGetDelivery_Foreign(t *testing.T) {
	delivery := &mockDeliveryService{
		getUserDeliveryFn: func(_ context.Context, _, _ int64) (models.Delivery, error) {
			return models.Delivery{}, service.ErrNotDeliveryOwner
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries/42", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, rec)["error"])
}

func TestGetDelivery_NotFound(t *testing.T) {
	delivery := &mockDeliveryService{
		getUserDeliveryFn: func(_ context.Context, _, _ int64) (models.Delivery, error) {
			return models.Delivery{}, store.ErrDeliveryNotFound
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries/42", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Delivery not found", decodeBody(t, rec)["error"])
}

// ─────────────────────────────────────────────
// track (public)
// ─────────────────────────────────────────────

func TestTrack_Success_NoAuthRequired(t *testing.T) {
	delivery := &mockDeliveryService{
		trackDeliveryFn: func(_ context.Context, trackingNumber string) (models.Delivery, error) {
			assert.Equal(t, "BZ123456", trackingNumber)
			return models.Delivery{ID: 1, TrackingNumber: trackingNumber}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := httptest.NewRequest(http.MethodPost, "/api/deliveries/track", strings.NewReader(`{"trackingNumber":"BZ123456"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	d, ok := decodeBody(t, rec)["delivery"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "BZ123456", d["trackingNumber"])
	assert.NotContains(t, d, "userId")
}

func TestTrack_MissingTrackingNumber(t *testing.T) {
	delivery := &mockDeliveryService{
		trackDeliveryFn: func(_ context.Context, _ string) (models.Delivery, error) {
			return models.Delivery{}, service.ErrTrackingNumberRequired
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := httptest.NewRequest(http.MethodPost, "/api/deliveries/track", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tracking number is required", decodeBody(t, rec)["error"])
}

// ─────────────────────────────────────────────
// updateStatus
// ─────────────────────────────────────────────

func TestUpdateStatus_Success(t *testing.T) {
	delivery := &mockDeliveryService{
		updateDeliveryStatusFn: func(_ context.Context, _, deliveryID int64, req models.UpdateStatusRequest) (models.Delivery, error) {
			assert.Equal(t, models.StatusInTransit, req.Status)
			return models.Delivery{ID: deliveryID, Status: req.Status}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodPut, "/api/deliveries/42/status", strings.NewReader(`{"status":"In-Transit"}`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	d, ok := decodeBody(t, rec)["delivery"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, models.StatusInTransit, d["status"])
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	delivery := &mockDeliveryService{
		updateDeliveryStatusFn: func(_ context.Context, _, _ int64, _ models.UpdateStatusRequest) (models.Delivery, error) {
			return models.Delivery{}, service.ErrInvalidStatus
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodPut, "/api/deliveries/42/status", strings.NewReader(`{"status":"Lost"}`)))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status. Must be one of: Pending, In-Transit, Delivered, Cancelled", decodeBody(t, rec)["error"])
}

// ─────────────────────────────────────────────
// statistics
// ─────────────────────────────────────────────

func TestStatistics_Success(t *testing.T) {
	delivery := &mockDeliveryService{
		getUserStatisticsFn: func(_ context.Context, _ int64) (models.Statistics, error) {
			return models.Statistics{
				TotalDeliveries:      5,
				DeliveredDeliveries:  2,
				OnTimeDeliveryRate:   95,
				AverageDeliveryTime:  "2.5 days",
				CustomerSatisfaction: 4.8,
			}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	req := authorized(httptest.NewRequest(http.MethodGet, "/api/deliveries/statistics", nil))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stats, ok := decodeBody(t, rec)["statistics"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), stats["totalDeliveries"])
	assert.Equal(t, "2.5 days", stats["averageDeliveryTime"])
}

// ─────────────────────────────────────────────
// uploadImage
// ─────────────────────────────────────────────

func TestUploadImage_Success(t *testing.T) {
	delivery := &mockDeliveryService{
		uploadPackageImageFn: func(_ context.Context, _, deliveryID int64, filename string, content io.Reader) (string, models.Delivery, error) {
			assert.Equal(t, "box.png", filename)
			data, err := io.ReadAll(content)
			require.NoError(t, err)
			assert.Equal(t, "png-bytes", string(data))
			imageURL := "/static/uploads/abc_box.png"
			return imageURL, models.Delivery{ID: deliveryID, ImageURL: imageURL}, nil
		},
	}

	router := newRouterWithDelivery(t, delivery)
	body, contentType := multipartImage(t, "image", "box.png", "png-bytes")
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries/42/image", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "Image uploaded successfully", resp["message"])
	assert.Equal(t, "/static/uploads/abc_box.png", resp["imageUrl"])
	assert.NotNil(t, resp["delivery"])
}

func TestUploadImage_NoImagePart(t *testing.T) {
	router := newRouterWithDelivery(t, &mockDeliveryService{})
	body, contentType := multipartImage(t, "photo", "box.png", "png-bytes")
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries/42/image", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No image uploaded", decodeBody(t, rec)["error"])
}

func TestUploadImage_NotMultipart(t *testing.T) {
	router := newRouterWithDelivery(t, &mockDeliveryService{})
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries/42/image", strings.NewReader("plain body")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No image uploaded", decodeBody(t, rec)["error"])
}

func TestUploadImage_DisallowedExtension(t *testing.T) {
	delivery := &mockDeliveryService{
		uploadPackageImageFn: func(_ context.Context, _, _ int64, _ string, _ io.Reader) (string, models.Delivery, error) {
			return "", models.Delivery{}, service.ErrFileTypeNotAllowed
		},
	}

	router := newRouterWithDelivery(t, delivery)
	body, contentType := multipartImage(t, "image", "report.pdf", "pdf-bytes")
	req := authorized(httptest.NewRequest(http.MethodPost, "/api/deliveries/42/image", body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File type not allowed. Allowed types: png, jpg, jpeg, gif", decodeBody(t, rec)["error"])
}
