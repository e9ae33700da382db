package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is a display label for stored weights. Numbers are never converted.
type Unit string

const (
	UnitPounds    Unit = "lb"
	UnitKilograms Unit = "kg"
)

func (u Unit) Valid() bool {
	return u == UnitPounds || u == UnitKilograms
}

// Profile defaults applied on registration and when a stored profile is missing fields.
const (
	DefaultDisplayName      = "Lifter"
	DefaultUnits            = UnitPounds
	DefaultRestTimerSeconds = 90
)

// UserProfile holds per-user preferences read by the workout engine.
type UserProfile struct {
	Units            Unit   `bson:"units" json:"units"`
	DefaultRestTimer int    `bson:"defaultRestTimer" json:"defaultRestTimer"` // seconds
	PhotoURL         string `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
}

// WithDefaults fills zero fields with the profile defaults.
func (p UserProfile) WithDefaults() UserProfile {
	if !p.Units.Valid() {
		p.Units = DefaultUnits
	}
	if p.DefaultRestTimer <= 0 {
		p.DefaultRestTimer = DefaultRestTimerSeconds
	}
	return p
}

// User represents the signed-in lifter.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Profile      UserProfile        `bson:"profile" json:"profile"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate carries the optional fields of a profile edit.
type ProfileUpdate struct {
	DisplayName      *string
	Units            *Unit
	DefaultRestTimer *int
	PhotoURL         *string
}
