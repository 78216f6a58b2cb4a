package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

// MonthlyRow is one scan as shown in the monthly list.
type MonthlyRow struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	CheckpointName string    `json:"checkpoint"`
	Username       string    `json:"guard"`
	Result         string    `json:"result"`
	DistanceMeters *float64  `json:"distance_meters,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}

// MonthlyList renders the period's records in chronological order. Records whose
// checkpoint is unknown keep an empty location name.
func MonthlyList(p Period, checkpoints []domain.Checkpoint, records []domain.AttendanceRecord, loc *time.Location) []MonthlyRow {
	names := make(map[uuid.UUID]string, len(checkpoints))
	for _, cp := range checkpoints {
		names[cp.ID] = cp.Name
	}

	sorted := make([]domain.AttendanceRecord, 0, len(records))
	for _, rec := range records {
		local := Local(rec.Timestamp, loc)
		if local.Year() == p.Year && int(local.Month()) == p.Month {
			sorted = append(sorted, rec)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	rows := make([]MonthlyRow, 0, len(sorted))
	for _, rec := range sorted {
		rows = append(rows, MonthlyRow{
			ID:             rec.ID,
			Date:           FormatDate(rec.Timestamp, loc),
			Time:           FormatTime(rec.Timestamp, loc),
			CheckpointName: names[rec.CheckpointID],
			Username:       rec.Username,
			Result:         rec.Result,
			DistanceMeters: rec.DistanceMeters,
			Notes:          rec.Notes,
		})
	}
	return rows
}
