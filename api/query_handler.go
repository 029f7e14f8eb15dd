package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
)

type queryHandler struct {
	responder Responder
	logger    zerolog.Logger
	queryRepo *database.QueryRepo
}

func newQueryHandler(queryRepo *database.QueryRepo) queryHandler {
	logger := log.With().Str("handlerName", "queryHandler").Logger()

	return queryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		queryRepo: queryRepo,
	}
}

func (h queryHandler) getAllQueries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queries, err := h.queryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, queries)
	}
}

// updateQueryStatus takes {"status": "new" | "read" | "replied"}.
func (h queryHandler) updateQueryStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readJSONObject(w, r, "query")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		status, _ := payload["status"].(string)
		if status == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("status"))
			return
		}

		if _, err := h.queryRepo.UpdateStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w)
	}
}

func (h queryHandler) deleteQuery() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := h.queryRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("queryId", id).Msg("Query deleted")
		h.responder.WriteSuccess(w)
	}
}
