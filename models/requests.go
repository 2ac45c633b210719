package models

// RegisterRequest is the payload of POST /api/auth/register.
// Name, Email and Password are required; the rest is optional profile data.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Bio      string `json:"bio"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest is the payload of PUT /api/auth/password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// CreateDeliveryRequest is the payload of POST /api/deliveries.
// All fields are required opaque strings.
type CreateDeliveryRequest struct {
	PackageType string `json:"packageType"`
	Weight      string `json:"weight"`
	Dimensions  string `json:"dimensions"`
	FromAddress string `json:"from"`
	ToAddress   string `json:"to"`
}

// TrackRequest is the payload of the public POST /api/deliveries/track.
type TrackRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// UpdateStatusRequest is the payload of PUT /api/deliveries/{id}/status.
// Description is optional; when empty the server generates one.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}
