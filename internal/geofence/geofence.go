// Package geofence decides whether a scan was taken close enough to its checkpoint.
package geofence

import (
	"fmt"
	"math"

	"github.com/diagnosis/patrol-checkpoints/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

type Result struct {
	// DistanceMeters is rounded to whole meters; zero when the location was not checked.
	DistanceMeters  float64
	RadiusMeters    float64
	Accepted        bool
	LocationChecked bool
	Reason          string
}

// Distance returns the great-circle distance in meters between two WGS84 points given in degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// rounding can push a a hair past 1 for antipodal points
	a = math.Min(1, math.Max(0, a))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Evaluate checks a scan against cp. A checkpoint without coordinates accepts every scan.
// The decision uses the unrounded distance.
func Evaluate(scanLat, scanLng float64, cp domain.Checkpoint) Result {
	radius := cp.EffectiveRadius()
	if !cp.HasLocation() {
		return Result{RadiusMeters: radius, Accepted: true}
	}

	d := Distance(scanLat, scanLng, *cp.Latitude, *cp.Longitude)
	res := Result{
		DistanceMeters:  math.Round(d),
		RadiusMeters:    radius,
		Accepted:        d <= radius,
		LocationChecked: true,
	}
	if !res.Accepted {
		res.Reason = fmt.Sprintf("scan is %.0f m from %s, limit is %.0f m", res.DistanceMeters, cp.Name, radius)
	}
	return res
}
