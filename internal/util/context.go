package util

import (
	"net/http"

	"github.com/aojudge/standings"
	"github.com/aojudge/standings/ceremony"
)

// ContextType is the string type for all context values
type ContextType string

const (
	// ContestKey is the key to be used for adding contests to context
	ContestKey = ContextType("contest")
	// CeremonyKey is the key to be used for adding ceremony steppers to context
	CeremonyKey = ContextType("ceremony")
)

// Contest returns the contest from request context
func Contest(r *http.Request) *standings.Contest {
	switch v := r.Context().Value(ContestKey).(type) {
	case standings.Contest:
		return &v
	case *standings.Contest:
		return v
	default:
		return nil
	}
}

// Ceremony returns the ceremony stepper from request context
func Ceremony(r *http.Request) *ceremony.Stepper {
	switch v := r.Context().Value(CeremonyKey).(type) {
	case *ceremony.Stepper:
		return v
	default:
		return nil
	}
}
