package domain

import (
	"errors"
	"strings"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return v.Fields
}

func TestValidationError(t *testing.T) {
	var v ValidationError
	if v.Err() != nil {
		t.Fatal("empty ValidationError should be nil")
	}
	v.Add("b", "bad")
	v.Add("a", "worse")
	if got := v.Err().Error(); got != "validation failed: a: worse; b: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCreateUserRequest(t *testing.T) {
	req := CreateUserRequest{Name: " Budi ", Username: " Budi.S ", Password: "secret1", Phone: "+62 812-3456-789"}
	req.Normalize()
	if req.Username != "budi.s" || req.Name != "Budi" || req.Role != RoleGuard || req.Phone != "+628123456789" {
		t.Fatalf("normalized = %+v", req)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := CreateUserRequest{Username: "x", Password: "123", Phone: "12"}
	bad.Normalize()
	fields := fieldsOf(t, bad.Validate())
	for _, f := range []string{"name", "username", "password", "phone"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing error for %s: %v", f, fields)
		}
	}
}

func TestUpdateUserRequest(t *testing.T) {
	empty := "  "
	short := "abc"
	req := UpdateUserRequest{Name: &empty, Password: &short}
	req.Normalize()
	fields := fieldsOf(t, req.Validate())
	if _, ok := fields["name"]; !ok {
		t.Errorf("blank name accepted: %v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Errorf("short password accepted: %v", fields)
	}

	if err := (&UpdateUserRequest{}).Validate(); err != nil {
		t.Errorf("empty update: %v", err)
	}
}

func TestLoginRequest(t *testing.T) {
	req := LoginRequest{Username: "  ADMIN "}
	req.Normalize()
	if req.Username != "admin" {
		t.Errorf("username = %q", req.Username)
	}
	if _, ok := fieldsOf(t, req.Validate())["password"]; !ok {
		t.Error("missing password accepted")
	}
}

func TestCheckpointInput(t *testing.T) {
	tests := []struct {
		name  string
		in    CheckpointInput
		field string
	}{
		{"valid without location", CheckpointInput{Name: "Gate", Token: "G1"}, ""},
		{"valid with location", CheckpointInput{Name: "Gate", Token: "G1", Latitude: fptr(-6.2), Longitude: fptr(106.8), RadiusMeters: fptr(30)}, ""},
		{"missing name", CheckpointInput{Token: "G1"}, "name"},
		{"missing token", CheckpointInput{Name: "Gate"}, "token"},
		{"half location", CheckpointInput{Name: "Gate", Token: "G1", Longitude: fptr(1)}, "latitude"},
		{"latitude range", CheckpointInput{Name: "Gate", Token: "G1", Latitude: fptr(91), Longitude: fptr(0)}, "latitude"},
		{"longitude range", CheckpointInput{Name: "Gate", Token: "G1", Latitude: fptr(0), Longitude: fptr(-181)}, "longitude"},
		{"zero radius", CheckpointInput{Name: "Gate", Token: "G1", RadiusMeters: fptr(0)}, "radius_meters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			err := tt.in.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if _, ok := fieldsOf(t, err)[tt.field]; !ok {
				t.Errorf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCheckpointApplyAndRadius(t *testing.T) {
	in := CheckpointInput{Name: "Gate", Token: "G1"}
	cp := in.Apply(Checkpoint{Active: true})
	if cp.RadiusMeters != DefaultRadiusMeters || !cp.Active || cp.HasLocation() {
		t.Errorf("applied = %+v", cp)
	}
	if r := (Checkpoint{RadiusMeters: -1}).EffectiveRadius(); r != DefaultRadiusMeters {
		t.Errorf("EffectiveRadius = %v", r)
	}
	if r := (Checkpoint{RadiusMeters: 12}).EffectiveRadius(); r != 12 {
		t.Errorf("EffectiveRadius = %v", r)
	}
}

func TestScanRequest(t *testing.T) {
	ok := ScanRequest{Token: "G1", Latitude: fptr(-6.2), Longitude: fptr(106.8)}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	fields := fieldsOf(t, (&ScanRequest{Notes: strings.Repeat("x", 1001)}).Validate())
	for _, f := range []string{"token", "latitude", "longitude", "notes"} {
		if _, ok := fields[f]; !ok {
			t.Errorf("missing error for %s", f)
		}
	}
}

func TestRoleInput(t *testing.T) {
	in := RoleInput{Permissions: []string{" scan.create", "scan.create", "", "report.*"}, Description: " Night shift "}
	in.Normalize()
	if len(in.Permissions) != 2 || in.Description != "Night shift" {
		t.Fatalf("normalized = %+v", in)
	}
	if err := in.Validate("Supervisor"); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := in.Validate(" "); err == nil {
		t.Error("blank role name accepted")
	}
	bad := RoleInput{Permissions: []string{"scan create"}}
	if err := bad.Validate("X"); err == nil {
		t.Error("malformed permission accepted")
	}
}

func TestScheduleInput(t *testing.T) {
	start, interval := 0, 24
	if err := (&ScheduleInput{StartHour: &start, IntervalHours: &interval}).Validate(); err != nil {
		t.Errorf("boundary schedule: %v", err)
	}
	if d := DefaultSchedule(); d.StartHour != 7 || d.IntervalHours != 2 {
		t.Errorf("default = %+v", d)
	}
}
