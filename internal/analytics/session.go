package analytics

import (
	"strconv"
	"strings"

	"forex-journal/internal/models"
)

// DetectSession maps an "HH:MM" time of day to a trading session.
// Hours [0,8) are Asian, [8,16) London, everything else New York.
// No timezone handling: the time is taken at face value.
func DetectSession(t string) models.Session {
	hh := t
	if i := strings.Index(t, ":"); i >= 0 {
		hh = t[:i]
	}
	hour, _ := strconv.Atoi(hh)
	switch {
	case hour >= 0 && hour < 8:
		return models.SessionAsian
	case hour >= 8 && hour < 16:
		return models.SessionLondon
	default:
		return models.SessionNewYork
	}
}
