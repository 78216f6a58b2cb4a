package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REPORT_UTC_OFFSET", "7h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Report.MatchPolicy != MatchPolicyStrict {
		t.Errorf("match policy = %q, want strict", cfg.Report.MatchPolicy)
	}
	if cfg.Auth.AccessTokenTTL != 12*time.Hour {
		t.Errorf("token ttl = %v, want 12h", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Retention.Months != 3 {
		t.Errorf("retention = %d, want 3", cfg.Retention.Months)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte(`
server:
  port: "9000"
report:
  utc_offset: 8h
  match_policy: window
retention:
  months: 6
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, env should win over file", cfg.Server.Port)
	}
	if cfg.Report.UTCOffset != 8*time.Hour {
		t.Errorf("offset = %v, want 8h from file", cfg.Report.UTCOffset)
	}
	if cfg.Report.MatchPolicy != MatchPolicyWindow {
		t.Errorf("policy = %q, want window", cfg.Report.MatchPolicy)
	}
	if cfg.Retention.Months != 6 {
		t.Errorf("retention = %d, want 6", cfg.Retention.Months)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown policy", func(c *Config) { c.Report.MatchPolicy = "fuzzy" }, true},
		{"offset too large", func(c *Config) { c.Report.UTCOffset = 15 * time.Hour }, true},
		{"production default secret", func(c *Config) { c.Env = "production" }, true},
		{"production custom secret", func(c *Config) { c.Env = "production"; c.Auth.JWTSecret = "s3cret" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestReportLocation(t *testing.T) {
	cfg := defaults()
	loc := cfg.ReportLocation()

	ts := time.Date(2024, 1, 5, 8, 10, 0, 0, time.UTC).In(loc)
	if ts.Hour() != 15 {
		t.Fatalf("local hour = %d, want 15", ts.Hour())
	}
	if loc.String() != "UTC+7" {
		t.Errorf("zone name = %q", loc.String())
	}
}

func TestReportLocationName(t *testing.T) {
	cases := []struct {
		offset time.Duration
		want   string
	}{
		{7 * time.Hour, "UTC+7"},
		{0, "UTC+0"},
		{-5 * time.Hour, "UTC-5"},
		{-30 * time.Minute, "UTC-0:30"},
		{5*time.Hour + 30*time.Minute, "UTC+5:30"},
		{-(3*time.Hour + 30*time.Minute), "UTC-3:30"},
	}
	for _, tc := range cases {
		cfg := defaults()
		cfg.Report.UTCOffset = tc.offset
		loc := cfg.ReportLocation()
		name, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
		if name != tc.want {
			t.Errorf("offset %v: zone name = %q, want %q", tc.offset, name, tc.want)
		}
		if off != int(tc.offset.Seconds()) {
			t.Errorf("offset %v: zone offset = %d", tc.offset, off)
		}
	}
}

func TestLoad_TrustProxy(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TRUST_PROXY", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.TrustProxy {
		t.Error("proxy headers trusted by default")
	}

	t.Setenv("TRUST_PROXY", "true")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Server.TrustProxy {
		t.Error("TRUST_PROXY=true not applied")
	}
}
