package report

import "time"

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

// Local converts a stored UTC timestamp into the reporting zone.
func Local(ts time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc)
}

func FormatDate(ts time.Time, loc *time.Location) string {
	return Local(ts, loc).Format(dateLayout)
}

func FormatTime(ts time.Time, loc *time.Location) string {
	return Local(ts, loc).Format(timeLayout)
}
