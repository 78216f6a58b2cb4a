package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultRadiusMeters applies when a checkpoint has no usable radius.
const DefaultRadiusMeters = 50.0

type Checkpoint struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Token        string    `json:"token"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	RadiusMeters float64   `json:"radius_meters"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasLocation is false for checkpoints registered without coordinates.
func (c Checkpoint) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

func (c Checkpoint) EffectiveRadius() float64 {
	if c.RadiusMeters <= 0 || math.IsNaN(c.RadiusMeters) {
		return DefaultRadiusMeters
	}
	return c.RadiusMeters
}

type CheckpointInput struct {
	Name         string   `json:"name"`
	Token        string   `json:"token"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *float64 `json:"radius_meters"`
	Active       *bool    `json:"active"`
}

func (in *CheckpointInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Token = strings.TrimSpace(in.Token)
}

func (in *CheckpointInput) Validate() error {
	var v ValidationError
	if in.Name == "" {
		v.Add("name", "is required")
	}
	if in.Token == "" {
		v.Add("token", "is required")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		v.Add("latitude", "latitude and longitude must be given together")
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		v.Add("latitude", "must be within [-90, 90]")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		v.Add("longitude", "must be within [-180, 180]")
	}
	if in.RadiusMeters != nil && !(*in.RadiusMeters > 0) {
		v.Add("radius_meters", "must be greater than 0")
	}
	return v.Err()
}

// Apply builds the checkpoint row the input describes on top of base.
func (in *CheckpointInput) Apply(base Checkpoint) Checkpoint {
	base.Name = in.Name
	base.Token = in.Token
	base.Latitude = in.Latitude
	base.Longitude = in.Longitude
	if in.RadiusMeters != nil {
		base.RadiusMeters = *in.RadiusMeters
	} else if base.RadiusMeters <= 0 {
		base.RadiusMeters = DefaultRadiusMeters
	}
	if in.Active != nil {
		base.Active = *in.Active
	}
	return base
}
