package api

import (
	"encoding/json"
	"net/http"

	"github.com/aojudge/standings"
)

func returnData(w http.ResponseWriter, retData any) {
	standings.StatusData(w, "success", retData, 200)
}

func errorData(w http.ResponseWriter, retData any, errCode int) {
	standings.StatusData(w, "error", retData, errCode)
}

func statusError(w http.ResponseWriter, err *standings.StatusError) {
	err.WriteError(w)
}

func parseJsonBody[T any](r *http.Request, output *T) *standings.StatusError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(output); err != nil {
		return standings.Statusf(400, "Invalid JSON input.")
	}
	return nil
}
