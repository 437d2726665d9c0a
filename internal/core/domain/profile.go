package domain

import (
	"errors"
	"time"
)

// Role is the authorization role carried by a profile.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// Profile is the application-level record of a user. Email and Role are
// fixed at creation; WalletBalance only moves through wallet operations.
type Profile struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	Role          Role      `json:"role" bson:"role"`
	Company       string    `json:"company,omitempty" bson:"company,omitempty"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty" bson:"avatar_url,omitempty"`
	WalletBalance Money     `json:"wallet_balance" bson:"wallet_balance"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// ProfilePatch lists the fields a user may edit on their own profile.
// Nil fields are left unchanged.
type ProfilePatch struct {
	Name      *string
	Company   *string
	Phone     *string
	AvatarURL *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Company == nil && p.Phone == nil && p.AvatarURL == nil
}

// Apply merges the patch into a copy of the profile.
func (p ProfilePatch) Apply(pr Profile) Profile {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Company != nil {
		pr.Company = *p.Company
	}
	if p.Phone != nil {
		pr.Phone = *p.Phone
	}
	if p.AvatarURL != nil {
		pr.AvatarURL = *p.AvatarURL
	}
	return pr
}

// Actor identifies the caller of a use case.
type Actor struct {
	ID   string
	Role Role
	Name string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Scope returns the client filter to apply to queries: admins see every
// client, clients only see themselves.
func (a Actor) Scope() string {
	if a.IsAdmin() {
		return ""
	}
	return a.ID
}
