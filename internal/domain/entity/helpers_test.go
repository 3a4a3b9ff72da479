package entity_test

import "time"

func fixedTime() time.Time {
	return time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
}
