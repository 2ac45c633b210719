// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/service"
	"github.com/beezetrack/beezetrack-server/internal/utils"
	"github.com/beezetrack/beezetrack-server/models"
	"github.com/go-chi/chi/v5"
)

// maxImageMemory caps how much of a multipart upload is buffered in
// memory before spilling to disk.
const maxImageMemory = 10 << 20

func (h *Handler) createDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdDelivery, err := h.services.DeliveryService.CreateDelivery(ctx, userID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deliveryResponse{Delivery: createdDelivery}, http.StatusCreated)
}

func (h *Handler) listDeliveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	deliveries, err := h.services.DeliveryService.ListUserDeliveries(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if deliveries == nil {
		deliveries = []models.Delivery{}
	}

	utils.WriteJSON(w, deliveriesResponse{Deliveries: deliveries}, http.StatusOK)
}

func (h *Handler) getDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	deliveryID, ok := deliveryIDFromRequest(w, r)
	if !ok {
		return
	}

	delivery, err := h.services.DeliveryService.GetUserDelivery(ctx, userID, deliveryID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deliveryResponse{Delivery: delivery}, http.StatusOK)
}

func (h *Handler) track(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	delivery, err := h.services.DeliveryService.TrackDelivery(ctx, req.TrackingNumber)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deliveryResponse{Delivery: delivery}, http.StatusOK)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	deliveryID, ok := deliveryIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedDelivery, err := h.services.DeliveryService.UpdateDeliveryStatus(ctx, userID, deliveryID, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, deliveryResponse{Delivery: updatedDelivery}, http.StatusOK)
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	stats, err := h.services.DeliveryService.GetUserStatistics(ctx, userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, statisticsResponse{Statistics: stats}, http.StatusOK)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	deliveryID, ok := deliveryIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxImageMemory); err != nil {
		log.Err(err).Msg("request is not a valid multipart form")
		respondError(w, r, service.ErrNoImageUploaded)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Err(err).Msg("multipart form has no image part")
		respondError(w, r, service.ErrNoImageUploaded)
		return
	}
	defer file.Close()

	imageURL, delivery, err := h.services.DeliveryService.UploadPackageImage(ctx, userID, deliveryID, header.Filename, file)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, imageUploadResponse{
		Message:  "Image uploaded successfully",
		ImageURL: imageURL,
		Delivery: delivery,
	}, http.StatusOK)
}

// deliveryIDFromRequest parses the {deliveryID} route parameter. A
// non-numeric value is indistinguishable from a missing record, so it is
// reported as not-found.
func deliveryIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	deliveryID, err := strconv.ParseInt(chi.URLParam(r, "deliveryID"), 10, 64)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("deliveryID", chi.URLParam(r, "deliveryID")).Msg("malformed delivery id in path")
		writeError(w, "Delivery not found", http.StatusNotFound)
		return 0, false
	}
	return deliveryID, true
}
