package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleInspector Role = "INSPECTOR"
	RoleUser      Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInspector, RoleUser:
		return true
	}
	return false
}

// CanInspect reports whether a user with this role may own inspections.
func (r Role) CanInspect() bool {
	return r == RoleAdmin || r == RoleInspector
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// UserSummary is the projection of a user embedded in inspection responses.
type UserSummary struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
