package standings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

func StatusData(w http.ResponseWriter, status string, retData any, statusCode int) {
	if err, ok := retData.(*StatusError); ok {
		err.WriteError(w)
		return
	}
	if err, ok := retData.(error); ok {
		retData = err.Error()
	}
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(struct {
		Status string `json:"status"`
		Data   any    `json:"data"`
	}{
		Status: status,
		Data:   retData,
	})
	if err != nil {
		if strings.Contains(err.Error(), "broken pipe") {
			return
		}
		slog.Error("Couldn't send return data", slog.Any("err", err))
	}
}
