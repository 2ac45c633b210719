package service

import "errors"

// Validation and authentication errors surfaced to the HTTP layer.
// Handlers translate these into status codes and public messages;
// the dynamic ones (e.g. the missing-field error) are wrapped with the
// offending field name and matched with [errors.Is].
var (
	ErrMissingRequiredField = errors.New("missing required field")

	ErrEmailAndPasswordRequired = errors.New("email and password are required")
	ErrInvalidCredentials       = errors.New("invalid email or password")

	ErrPasswordFieldsRequired   = errors.New("current password and new password are required")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrTrackingNumberRequired = errors.New("tracking number is required")
	ErrStatusRequired         = errors.New("status is required")
	ErrInvalidStatus          = errors.New("invalid status")

	// ErrNotDeliveryOwner is returned when an authenticated caller
	// touches a delivery that belongs to a different user.
	ErrNotDeliveryOwner = errors.New("delivery belongs to a different user")

	ErrNoImageUploaded    = errors.New("no image uploaded")
	ErrNoImageSelected    = errors.New("no image selected")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)
