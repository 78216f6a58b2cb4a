package geofence

import (
	"math"
	"strings"
	"testing"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func checkpointAt(lat, lng, radius float64) domain.Checkpoint {
	return domain.Checkpoint{Name: "Gate A", Latitude: ptr(lat), Longitude: ptr(lng), RadiusMeters: radius, Active: true}
}

func TestEvaluate_SamePointAlwaysAccepted(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 50, 1000} {
		res := Evaluate(-6.2, 106.8, checkpointAt(-6.2, 106.8, radius))
		if !res.Accepted || res.DistanceMeters != 0 {
			t.Errorf("radius %v: got %+v, want accepted at 0 m", radius, res)
		}
	}
}

func TestEvaluate_RadiusBoundary(t *testing.T) {
	cp := checkpointAt(0, 0, 100)

	far := Evaluate(0.001, 0, cp)
	if far.Accepted {
		t.Fatalf("0.001° (~111 m) should be rejected: %+v", far)
	}
	if far.DistanceMeters != 111 {
		t.Errorf("distance = %v, want 111", far.DistanceMeters)
	}
	if !strings.Contains(far.Reason, "111 m") || !strings.Contains(far.Reason, "100 m") {
		t.Errorf("reason %q should carry distance and limit", far.Reason)
	}

	near := Evaluate(0.0005, 0, cp)
	if !near.Accepted {
		t.Fatalf("0.0005° (~56 m) should be accepted: %+v", near)
	}
	if near.Reason != "" {
		t.Errorf("accepted scan has reason %q", near.Reason)
	}
}

func TestEvaluate_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{-6.175392, 106.827153, -6.175800, 106.828000},
		{51.5007, -0.1246, 40.6892, -74.0445},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := Evaluate(p[0], p[1], checkpointAt(p[2], p[3], 50))
		ba := Evaluate(p[2], p[3], checkpointAt(p[0], p[1], 50))
		if ab != ba {
			t.Errorf("asymmetric result for %v: %+v vs %+v", p, ab, ba)
		}
	}
}

func TestEvaluate_NoCoordinatesSkipsCheck(t *testing.T) {
	cp := domain.Checkpoint{Name: "Lobby", RadiusMeters: 10, Active: true}
	res := Evaluate(10, 10, cp)
	if !res.Accepted || res.LocationChecked {
		t.Fatalf("got %+v, want accepted without location check", res)
	}

	half := domain.Checkpoint{Name: "Lobby", Latitude: ptr(1), RadiusMeters: 10}
	if res := Evaluate(10, 10, half); !res.Accepted {
		t.Fatalf("checkpoint with only latitude should skip the check: %+v", res)
	}
}

func TestEvaluate_DefaultRadius(t *testing.T) {
	cp := checkpointAt(0, 0, 0)
	// ~44.5 m north, inside the 50 m default
	if res := Evaluate(0.0004, 0, cp); !res.Accepted || res.RadiusMeters != 50 {
		t.Fatalf("got %+v, want accepted with default 50 m radius", res)
	}
	// ~66.7 m north, outside
	if res := Evaluate(0.0006, 0, cp); res.Accepted {
		t.Fatalf("got %+v, want rejected with default 50 m radius", res)
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// one degree of latitude on a 6371 km sphere
	want := EarthRadiusMeters * math.Pi / 180
	got := Distance(0, 0, 1, 0)
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("Distance = %v, want %v", got, want)
	}
}
