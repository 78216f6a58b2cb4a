package domain

import "time"

// CoverageSchedule partitions a day into patrol slots. There is exactly one row.
type CoverageSchedule struct {
	StartHour     int       `json:"start_hour"`
	IntervalHours int       `json:"interval_hours"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func DefaultSchedule() CoverageSchedule {
	return CoverageSchedule{StartHour: 7, IntervalHours: 2}
}

type ScheduleInput struct {
	StartHour     *int `json:"start_hour"`
	IntervalHours *int `json:"interval_hours"`
}

func (in *ScheduleInput) Validate() error {
	var v ValidationError
	if in.StartHour == nil || *in.StartHour < 0 || *in.StartHour > 23 {
		v.Add("start_hour", "is required and must be within [0, 23]")
	}
	if in.IntervalHours == nil || *in.IntervalHours < 1 || *in.IntervalHours > 24 {
		v.Add("interval_hours", "is required and must be within [1, 24]")
	}
	return v.Err()
}
