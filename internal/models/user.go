package models

import (
	"github.com/localnerve/shopdb/internal/types"
)

// Role names with special privileges.
const (
	RoleAdmin  = "Admin"
	RoleUser   = "User"
	RoleExpert = "Expert"
)

// User is a registered account. Email is unique.
type User struct {
	UserID       int64  `gorm:"primaryKey;autoIncrement" json:"userId" bson:"_id"`
	RoleID       int64  `gorm:"not null;index" json:"roleId" bson:"roleId"`
	FirstName    string `gorm:"size:128;not null" json:"firstName" bson:"firstName"`
	LastName     string `gorm:"size:128;not null" json:"lastName" bson:"lastName"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email" bson:"email"`
	PhoneNumber  string `gorm:"size:64;not null" json:"phoneNumber" bson:"phoneNumber"`
	PasswordHash string `gorm:"size:255;not null" json:"-" bson:"passwordHash"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// HasRole reports whether the principal holds one of roles.
func (p *Principal) HasRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal sees every user's records.
func (p *Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}

// UserPatch is the partial form of User. Email and password are handled by registration.
type UserPatch struct {
	RoleID      *types.FlexInt64 `json:"roleId"`
	FirstName   *string          `json:"firstName"`
	LastName    *string          `json:"lastName"`
	PhoneNumber *string          `json:"phoneNumber"`
}

func (p UserPatch) Apply(row *User) {
	mergeInt64(&row.RoleID, p.RoleID)
	mergeString(&row.FirstName, p.FirstName)
	mergeString(&row.LastName, p.LastName)
	mergeString(&row.PhoneNumber, p.PhoneNumber)
}

func (p UserPatch) Validate(create bool) error {
	if create {
		return firstMissing(
			field("roleId", p.RoleID != nil),
			field("firstName", !blank(p.FirstName)),
			field("lastName", !blank(p.LastName)),
			field("phoneNumber", !blank(p.PhoneNumber)),
		)
	}
	return nil
}
