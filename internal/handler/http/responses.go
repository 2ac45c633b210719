package http

import "github.com/beezetrack/beezetrack-server/models"

// Response envelopes. Field names mirror what the web client consumes.

type userTokenResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type userResponse struct {
	User models.User `json:"user"`
}

type deliveryResponse struct {
	Delivery models.Delivery `json:"delivery"`
}

type deliveriesResponse struct {
	Deliveries []models.Delivery `json:"deliveries"`
}

type statisticsResponse struct {
	Statistics models.Statistics `json:"statistics"`
}

type imageUploadResponse struct {
	Message  string          `json:"message"`
	ImageURL string          `json:"imageUrl"`
	Delivery models.Delivery `json:"delivery"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
