package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
	"github.com/diagnosis/patrol-checkpoints/internal/report"
)

func TestMatrixReport(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	gate := domain.Checkpoint{ID: uuid.New(), Name: "Gate A", Token: "A", Active: true}
	attendance := &fakeAttendanceRepo{records: []domain.AttendanceRecord{
		// 2024-01-01 07:05 local
		{ID: uuid.New(), Timestamp: time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC), CheckpointID: gate.ID, Username: "budi", Result: domain.ResultOK},
		// previous month locally, must be excluded by the query range
		{ID: uuid.New(), Timestamp: time.Date(2023, 12, 31, 16, 59, 0, 0, time.UTC), CheckpointID: gate.ID, Username: "andi", Result: domain.ResultOK},
	}}
	svc := NewReportService(
		newFakeCheckpointRepo(gate),
		attendance,
		&fakeScheduleRepo{schedule: domain.CoverageSchedule{StartHour: 7, IntervalHours: 2}},
		loc,
		report.MatchStrict,
	)

	m, err := svc.Matrix(context.Background(), "1", "2024")
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	if m.Period != "2024-01" || len(m.Days) != 31 || len(m.Slots) != 12 {
		t.Fatalf("unexpected shape period=%s days=%d slots=%d", m.Period, len(m.Days), len(m.Slots))
	}
	if m.Slots[0] != "07:00" || m.Slots[11] != "05:00" {
		t.Errorf("slots = %v", m.Slots)
	}
	if len(m.Cells) != 12*31 {
		t.Fatalf("cells = %d, want %d", len(m.Cells), 12*31)
	}
	first := m.Cells[0]
	if first.Day != 1 || first.Slot != "07:00" || first.Initials != "BUD" {
		t.Errorf("first cell = %+v", first)
	}
	for _, c := range m.Cells {
		if c.Initials == "AND" {
			t.Errorf("record from previous month leaked into %+v", c)
		}
	}

	wantFrom := time.Date(2023, 12, 31, 17, 0, 0, 0, time.UTC)
	if !attendance.from.Equal(wantFrom) {
		t.Errorf("query from = %v, want %v", attendance.from, wantFrom)
	}
}

func TestMonthlyReport(t *testing.T) {
	gate := domain.Checkpoint{ID: uuid.New(), Name: "Gate A", Active: true}
	attendance := &fakeAttendanceRepo{records: []domain.AttendanceRecord{
		{ID: uuid.New(), Timestamp: time.Date(2024, 2, 10, 3, 0, 0, 0, time.UTC), CheckpointID: gate.ID, Username: "budi", Result: domain.ResultOK},
		{ID: uuid.New(), Timestamp: time.Date(2024, 2, 9, 3, 0, 0, 0, time.UTC), CheckpointID: gate.ID, Username: "sari", Result: domain.ResultRejected},
	}}
	svc := NewReportService(newFakeCheckpointRepo(gate), attendance, &fakeScheduleRepo{}, time.FixedZone("UTC+7", 7*3600), report.MatchStrict)

	r, err := svc.Monthly(context.Background(), "2", "2024")
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows = %d", len(r.Rows))
	}
	if r.Rows[0].Date != "09/02/2024" || r.Rows[0].Time != "10:00" || r.Rows[0].Username != "sari" {
		t.Errorf("first row = %+v", r.Rows[0])
	}
	if r.Rows[1].CheckpointName != "Gate A" {
		t.Errorf("second row = %+v", r.Rows[1])
	}
}

func TestReportInvalidPeriodSkipsQueries(t *testing.T) {
	attendance := &fakeAttendanceRepo{}
	svc := NewReportService(newFakeCheckpointRepo(), attendance, &fakeScheduleRepo{}, time.UTC, report.MatchStrict)

	for _, tc := range [][2]string{{"13", "2024"}, {"0", "2024"}, {"1", "99"}, {"x", "2024"}} {
		if _, err := svc.Matrix(context.Background(), tc[0], tc[1]); !errors.Is(err, report.ErrInvalidPeriod) {
			t.Errorf("Matrix(%s, %s) err = %v", tc[0], tc[1], err)
		}
		if _, err := svc.Monthly(context.Background(), tc[0], tc[1]); !errors.Is(err, report.ErrInvalidPeriod) {
			t.Errorf("Monthly(%s, %s) err = %v", tc[0], tc[1], err)
		}
	}
	if !attendance.from.IsZero() {
		t.Error("store was queried for an invalid period")
	}
}

func TestReportPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	cps := newFakeCheckpointRepo()
	cps.listErr = boom
	svc := NewReportService(cps, &fakeAttendanceRepo{}, &fakeScheduleRepo{}, time.UTC, report.MatchStrict)

	if _, err := svc.Matrix(context.Background(), "1", "2024"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestReportWithoutLocationUsesUTC(t *testing.T) {
	attendance := &fakeAttendanceRepo{}
	svc := NewReportService(newFakeCheckpointRepo(), attendance, &fakeScheduleRepo{}, nil, report.MatchStrict)

	if _, err := svc.Monthly(context.Background(), "3", "2024"); err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC); !attendance.from.Equal(want) {
		t.Errorf("from = %v, want %v", attendance.from, want)
	}
}
