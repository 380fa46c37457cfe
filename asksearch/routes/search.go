package routes

import (
	"asksearch/asksearch/controllers"
	"asksearch/asksearch/utils/types"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const maxSearchBody = 64 << 10

// SearchRoutes is mounted at /api.
func SearchRoutes(ctrl *controllers.SearchController) chi.Router {
	r := chi.NewRouter()

	// POST /api/search
	r.Post("/search", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.SearchRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxSearchBody)).Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, http.StatusBadRequest, errors.New("Query cannot be empty")
			}
			return nil, http.StatusBadRequest, errors.New("invalid request body: " + err.Error())
		}
		resp, err := ctrl.Search(r.Context(), req)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return resp, http.StatusOK, nil
	}))

	return r
}
