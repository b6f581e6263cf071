package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aojudge/standings/internal/util"
	"github.com/go-chi/chi/v5"
)

func (s *API) validateContestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contestID, err := strconv.Atoi(chi.URLParam(r, "contestID"))
		if err != nil {
			errorData(w, "invalid contest ID", http.StatusBadRequest)
			return
		}
		contest, err1 := s.base.Contest(r.Context(), contestID)
		if err1 != nil {
			errorData(w, "contest does not exist", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.ContestKey, contest)))
	})
}

func (s *API) validateCeremonyID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stepper, err := s.base.Ceremony(chi.URLParam(r, "sessionID"))
		if err != nil {
			errorData(w, "ceremony session does not exist", http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), util.CeremonyKey, stepper)))
	})
}
