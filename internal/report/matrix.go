package report

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

// MatchPolicy decides which records fill a slot.
type MatchPolicy string

const (
	// MatchStrict fills a slot only with scans whose local hour equals the slot start.
	MatchStrict MatchPolicy = "strict"
	// MatchWindow fills a slot with scans anywhere in [start, start+interval).
	MatchWindow MatchPolicy = "window"
)

func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch MatchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case MatchStrict, "":
		return MatchStrict, nil
	case MatchWindow:
		return MatchWindow, nil
	}
	return "", fmt.Errorf("unknown match policy %q", s)
}

type Options struct {
	Location *time.Location
	Policy   MatchPolicy
}

// MatrixCell is one (slot, checkpoint, day) entry. Initials is empty when nobody covered it.
type MatrixCell struct {
	Day            int       `json:"day"`
	Date           string    `json:"date"`
	Slot           string    `json:"slot"`
	SlotHour       int       `json:"slot_hour"`
	CheckpointID   uuid.UUID `json:"checkpoint_id"`
	CheckpointName string    `json:"checkpoint"`
	Initials       string    `json:"initials,omitempty"`
	ScannedAt      string    `json:"scanned_at,omitempty"`
}

// Initials is the first three letters of a login name, upper-cased, without padding.
func Initials(username string) string {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) > 3 {
		runes := []rune(username)
		username = string(runes[:3])
	}
	return strings.ToUpper(username)
}

type cellKey struct {
	checkpoint uuid.UUID
	day        int
	slot       int
}

// BuildMatrix lays out every (slot, checkpoint, day) cell of the period ordered by slot
// generation order, then checkpoint name, then day. Only accepted records cover a cell and
// the earliest matching record wins.
func BuildMatrix(p Period, schedule domain.CoverageSchedule, checkpoints []domain.Checkpoint, records []domain.AttendanceRecord, opts Options) []MatrixCell {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	slots := Slots(schedule)
	days := p.Days()

	cps := make([]domain.Checkpoint, len(checkpoints))
	copy(cps, checkpoints)
	sort.SliceStable(cps, func(i, j int) bool {
		return cps[i].Name < cps[j].Name
	})

	covered := indexRecords(p, slots, records, loc, opts.Policy)

	cells := make([]MatrixCell, 0, len(slots)*len(cps)*len(days))
	for si, slot := range slots {
		for _, cp := range cps {
			for _, day := range days {
				cell := MatrixCell{
					Day:            day,
					Date:           time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, loc).Format(dateLayout),
					Slot:           slot.Label(),
					SlotHour:       slot.StartHour,
					CheckpointID:   cp.ID,
					CheckpointName: cp.Name,
				}
				if rec, ok := covered[cellKey{checkpoint: cp.ID, day: day, slot: si}]; ok {
					cell.Initials = Initials(rec.Username)
					cell.ScannedAt = FormatTime(rec.Timestamp, loc)
				}
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

func indexRecords(p Period, slots []Slot, records []domain.AttendanceRecord, loc *time.Location, policy MatchPolicy) map[cellKey]domain.AttendanceRecord {
	covered := make(map[cellKey]domain.AttendanceRecord)
	for _, rec := range records {
		if !rec.Accepted() {
			continue
		}
		local := Local(rec.Timestamp, loc)
		if local.Year() != p.Year || int(local.Month()) != p.Month {
			continue
		}
		si := slotFor(slots, local.Hour(), policy)
		if si < 0 {
			continue
		}
		key := cellKey{checkpoint: rec.CheckpointID, day: local.Day(), slot: si}
		if prev, ok := covered[key]; ok && !rec.Timestamp.Before(prev.Timestamp) {
			continue
		}
		covered[key] = rec
	}
	return covered
}

func slotFor(slots []Slot, hour int, policy MatchPolicy) int {
	for i, s := range slots {
		if policy == MatchWindow {
			if s.Covers(hour) {
				return i
			}
			continue
		}
		if s.StartHour == hour {
			return i
		}
	}
	return -1
}
