package models

import "time"

// User represents an account entity used for authentication and profile
// management. Sensitive fields must never be exposed outside trusted
// boundaries.
type User struct {
	// ID is the unique identifier of the user, assigned by the store.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier of the account.
	// Uniqueness is enforced by the store.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never serialized; plaintext passwords exist only inside request
	// payloads and are hashed before persistence.
	PasswordHash string `json:"-"`

	// Optional profile fields. Stored as empty strings when not provided.
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Bio     string `json:"bio"`

	// CreatedAt is the timestamp when the account was created.
	// Internal bookkeeping only, not part of the public view.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfilePatch is a partial profile update. Only non-nil fields overwrite
// the stored values; nil fields keep their previous contents. Pointer
// fields make "absent" distinguishable from "set to empty".
type ProfilePatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Bio     *string `json:"bio"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil &&
		p.Address == nil && p.City == nil && p.State == nil &&
		p.ZipCode == nil && p.Bio == nil
}

// Apply overlays the patch onto u, field by field.
func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.State != nil {
		u.State = *p.State
	}
	if p.ZipCode != nil {
		u.ZipCode = *p.ZipCode
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}
