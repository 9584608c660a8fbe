package utils

import "time"

// TimeNowUTC is the single clock used by the pipeline so that ingested
// date ranges and batch timestamps agree regardless of server timezone.
func TimeNowUTC() time.Time {
	return time.Now().UTC()
}

// DateOnly truncates a timestamp to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
