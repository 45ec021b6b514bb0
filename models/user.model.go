package models

import "time"

// Role is the closed set of roles the identity provider can claim for a user.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEducator Role = "EDUCATOR"
)

// ParseRole maps the provider's loosely-typed role claim onto the closed set.
// Anything unrecognized is a student.
func ParseRole(claim string) Role {
	if claim == string(RoleEducator) || claim == "educator" {
		return RoleEducator
	}
	return RoleStudent
}

// User is a local cache of an identity-provider account plus ledger-owned
// fields. The ID is assigned by the provider and never generated here.
type User struct {
	ID        string `json:"_id" gorm:"primaryKey"`
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"index"`
	ImageURL  string `json:"imageUrl"`
	Role      Role   `json:"role" gorm:"default:'STUDENT'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
