package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResultOK       = "OK"
	ResultRejected = "REJECTED"
)

// AttendanceRecord is the persisted outcome of one scan attempt. Rows are never updated.
type AttendanceRecord struct {
	ID             uuid.UUID `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	UserID         uuid.UUID `json:"user_id"`
	Username       string    `json:"username"`
	CheckpointID   uuid.UUID `json:"checkpoint_id"`
	Token          string    `json:"token"`
	ScanLat        float64   `json:"scan_lat"`
	ScanLng        float64   `json:"scan_lng"`
	DistanceMeters *float64  `json:"distance_meters"`
	Result         string    `json:"result"`
	Notes          string    `json:"notes,omitempty"`
}

func (r AttendanceRecord) Accepted() bool {
	return r.Result == ResultOK
}

type ScanRequest struct {
	Token     string   `json:"token"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

func (r *ScanRequest) Validate() error {
	var v ValidationError
	if r.Token == "" {
		v.Add("token", "is required")
	}
	if r.Latitude == nil || *r.Latitude < -90 || *r.Latitude > 90 {
		v.Add("latitude", "is required and must be within [-90, 90]")
	}
	if r.Longitude == nil || *r.Longitude < -180 || *r.Longitude > 180 {
		v.Add("longitude", "is required and must be within [-180, 180]")
	}
	if len(r.Notes) > 1000 {
		v.Add("notes", "must be at most 1000 characters")
	}
	return v.Err()
}

type ScanResponse struct {
	Record         *AttendanceRecord `json:"record"`
	CheckpointName string            `json:"checkpoint_name"`
	Accepted       bool              `json:"accepted"`
	LocationCheck  bool              `json:"location_checked"`
	DistanceMeters float64           `json:"distance_meters"`
	RadiusMeters   float64           `json:"radius_meters"`
	Reason         string            `json:"reason,omitempty"`
}
