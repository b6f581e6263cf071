// Package api exposes the scoreboard service over HTTP. Everything
// speaks the JSON status envelope except the CSV export.
package api

import (
	"net/http"
	"time"

	"github.com/aojudge/standings/board"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/schema"
	"github.com/klauspost/compress/gzhttp"
)

var decoder *schema.Decoder

func init() {
	decoder = schema.NewDecoder()
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

type API struct {
	base *board.API
}

// New declares a new API instance
func New(base *board.API) *API {
	return &API{base}
}

func (s *API) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(middleware.Timeout(20 * time.Second))
	corsConfig := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(corsConfig.Handler)

	r.Route("/contests", func(r chi.Router) {
		r.Get("/", s.getContests)
		r.Post("/", s.createContest)

		r.Route("/{contestID}", func(r chi.Router) {
			r.Use(s.validateContestID)

			r.Get("/", s.getContest)
			r.Post("/update", s.updateContest)
			r.Delete("/", s.deleteContest)
			r.Post("/freeze", s.setFreeze)

			r.Get("/problems", s.getProblems)
			r.Post("/problems", s.createProblem)
			r.Delete("/problems/{problemID}", s.deleteProblem)

			r.Get("/participants", s.getParticipants)
			r.Post("/register", s.registerTeam)
			r.Delete("/participants/{teamID}", s.unregisterTeam)

			r.With(gzipHandler).Get("/runs", s.listRuns)
			r.With(gzipHandler).Get("/leaderboard", s.getLeaderboard)
			r.With(gzipHandler).Get("/leaderboard.csv", s.serveLeaderboardCSV)
		})
	})

	r.Route("/runs", func(r chi.Router) {
		r.Delete("/{runID}", s.deleteRun)
	})

	r.Route("/ceremony", func(r chi.Router) {
		r.Post("/", s.startCeremony)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Use(s.validateCeremonyID)

			r.Get("/", s.ceremonyState)
			r.Post("/advance", s.advanceCeremony)
			r.Post("/stop", s.stopCeremony)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/flags", s.getAllFlags)
		r.Post("/updateFlags", s.updateFlags)
	})

	return r
}
