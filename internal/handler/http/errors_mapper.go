package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/internal/service"
	"github.com/beezetrack/beezetrack-server/internal/store"
	"github.com/beezetrack/beezetrack-server/internal/utils"
)

// apiError pairs the HTTP status with the public message emitted in the
// `{"error": "..."}` body. Message texts are part of the wire contract
// consumed by the web client and must not drift.
type apiError struct {
	status  int
	message string
}

var errorStatusMap = map[error]apiError{
	service.ErrEmailAndPasswordRequired: {http.StatusBadRequest, "Email and password are required"},
	service.ErrInvalidCredentials:       {http.StatusUnauthorized, "Invalid email or password"},
	service.ErrPasswordFieldsRequired:   {http.StatusBadRequest, "Current password and new password are required"},
	service.ErrCurrentPasswordIncorrect: {http.StatusUnauthorized, "Current password is incorrect"},
	service.ErrTokenIsExpiredOrInvalid:  {http.StatusUnauthorized, "Token is expired or invalid"},

	service.ErrTrackingNumberRequired: {http.StatusBadRequest, "Tracking number is required"},
	service.ErrStatusRequired:         {http.StatusBadRequest, "Status is required"},
	service.ErrInvalidStatus:          {http.StatusBadRequest, "Invalid status. Must be one of: Pending, In-Transit, Delivered, Cancelled"},
	service.ErrNotDeliveryOwner:       {http.StatusForbidden, "Unauthorized"},

	service.ErrNoImageUploaded:    {http.StatusBadRequest, "No image uploaded"},
	service.ErrNoImageSelected:    {http.StatusBadRequest, "No image selected"},
	service.ErrFileTypeNotAllowed: {http.StatusBadRequest, "File type not allowed. Allowed types: png, jpg, jpeg, gif"},

	store.ErrEmailAlreadyExists: {http.StatusConflict, "User with this email already exists"},
	store.ErrNoUserWasFound:     {http.StatusNotFound, "User not found"},
	store.ErrDeliveryNotFound:   {http.StatusNotFound, "Delivery not found"},
}

// apiErrorFromError resolves a service or store error to its public
// status and message. Unclassified errors (including the low-level SQL
// sentinels) come back as a plain 500.
func apiErrorFromError(err error) apiError {
	if errors.Is(err, service.ErrMissingRequiredField) {
		return apiError{http.StatusBadRequest, missingFieldMessage(err)}
	}

	for target, apiErr := range errorStatusMap {
		if errors.Is(err, target) {
			return apiErr
		}
	}

	return apiError{http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)}
}

// missingFieldMessage rebuilds the public validation message from a
// wrapped service.ErrMissingRequiredField, whose text ends with the
// offending field name.
func missingFieldMessage(err error) string {
	errText := err.Error()
	field := errText[strings.LastIndex(errText, ": ")+2:]
	return "Missing required field: " + field
}

// writeError emits the uniform `{"error": "<message>"}` body.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	utils.WriteJSON(w, errorResponse{Error: message}, statusCode)
}

// respondError logs the underlying error and writes its mapped public
// representation.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apiErrorFromError(err)
	logger.FromRequest(r).Err(err).Int("status", apiErr.status).Msg(apiErr.message)
	writeError(w, apiErr.message, apiErr.status)
}
