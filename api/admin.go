package api

import (
	"log/slog"
	"net/http"

	"github.com/aojudge/standings/internal/config"
)

func (s *API) getAllFlags(w http.ResponseWriter, r *http.Request) {
	returnData(w, struct {
		BoolFlags   []config.Flag[bool]   `json:"bool_flags"`
		StringFlags []config.Flag[string] `json:"string_flags"`
		IntFlags    []config.Flag[int]    `json:"int_flags"`
	}{
		BoolFlags:   config.GetFlags[bool](),
		StringFlags: config.GetFlags[string](),
		IntFlags:    config.GetFlags[int](),
	})
}

func (s *API) updateFlags(w http.ResponseWriter, r *http.Request) {
	var args struct {
		BoolFlags   map[string]bool   `json:"bool_flags"`
		StringFlags map[string]string `json:"string_flags"`
		IntFlags    map[string]int    `json:"int_flags"`
	}
	if err := parseJsonBody(r, &args); err != nil {
		statusError(w, err)
		return
	}
	for k, v := range args.BoolFlags {
		flg, ok := config.GetFlag[bool](k)
		if !ok {
			slog.WarnContext(r.Context(), "Flag not found", slog.String("name", k))
			continue
		}
		flg.Update(v)
	}
	for k, v := range args.StringFlags {
		flg, ok := config.GetFlag[string](k)
		if !ok {
			slog.WarnContext(r.Context(), "Flag not found", slog.String("name", k))
			continue
		}
		flg.Update(v)
	}
	for k, v := range args.IntFlags {
		flg, ok := config.GetFlag[int](k)
		if !ok {
			slog.WarnContext(r.Context(), "Flag not found", slog.String("name", k))
			continue
		}
		flg.Update(v)
	}
	returnData(w, "Updated flags. Some changes may only apply after a restart")
}
