// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Delivery statuses accepted by the API. Transitions are unconstrained:
// any status may follow any other.
const (
	StatusPending   = "Pending"
	StatusInTransit = "In-Transit"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// ValidStatuses lists every status label accepted by the status-update
// endpoint, in the order they are reported back in validation errors.
var ValidStatuses = []string{StatusPending, StatusInTransit, StatusDelivered, StatusCancelled}

// IsValidStatus reports whether status is one of the four allowed labels.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Delivery represents a package delivery owned by a single user, together
// with its append-only status-update trail.
//
// Date is a human-readable string ("January 02, 2006"); the store orders
// deliveries by this string, not by real chronology. Status always mirrors
// the newest entry in Updates.
type Delivery struct {
	ID             int64  `json:"id"`
	TrackingNumber string `json:"trackingNumber"`
	PackageType    string `json:"packageType"`
	Weight         string `json:"weight"`
	Dimensions     string `json:"dimensions"`
	FromAddress    string `json:"from"`
	ToAddress      string `json:"to"`
	Date           string `json:"date"`
	Status         string `json:"status"`

	// UserID is the owning user. Omitted from the public tracking view;
	// callers strip it by zeroing the field before serialization.
	UserID int64 `json:"userId,omitempty"`

	// ImageURL is the static path of the uploaded package image,
	// empty until an image is attached.
	ImageURL string `json:"imageUrl"`

	// Updates holds the status-update trail, newest first.
	Updates []DeliveryUpdate `json:"updates"`

	// CreatedAt is internal bookkeeping, not part of any view.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Delivery model.
func (d Delivery) TableName() string {
	return "deliveries"
}

// PublicView returns a copy of the delivery suitable for unauthenticated
// tracking: the owning user's identity is stripped.
func (d Delivery) PublicView() Delivery {
	d.UserID = 0
	return d
}

// DeliveryUpdate is a single append-only entry in a delivery's status
// trail. Entries are never mutated or deleted after creation.
//
// The delivery_id JSON key is snake_case for compatibility with existing
// API consumers.
type DeliveryUpdate struct {
	ID          int64  `json:"id"`
	DeliveryID  int64  `json:"delivery_id"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`

	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the DeliveryUpdate model.
func (u DeliveryUpdate) TableName() string {
	return "delivery_updates"
}
