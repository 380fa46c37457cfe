package routes

import (
	"asksearch/asksearch/controllers"
	"asksearch/asksearch/utils/logging"
	"asksearch/asksearch/utils/types"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// handleJSON runs handler and writes its result, or a {"message": ...} body
// when it fails. A *controllers.SearchError overrides the returned status.
func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			var searchErr *controllers.SearchError
			if errors.As(err, &searchErr) {
				status = searchErr.Status
			}
			writeJSON(w, status, types.ErrorResponse{Message: err.Error()})
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.ErrorLogger.Error("response encode error", zap.Error(err))
	}
}
