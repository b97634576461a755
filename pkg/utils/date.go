package utils

import (
	"log"
	"time"
)

// TimeNowIST returns the current time in the Indian market timezone.
func TimeNowIST() time.Time {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// MarketSession labels the trading session for the given wall-clock time.
// The cash session runs 09:00-15:00; anything earlier is PRE, later is POST.
func MarketSession(t time.Time) string {
	switch {
	case t.Hour() >= 9 && t.Hour() < 15:
		return "LIVE"
	case t.Hour() < 9:
		return "PRE"
	default:
		return "POST"
	}
}
