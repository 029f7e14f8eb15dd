package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// contentHandler is the admin surface of one content collection.
type contentHandler[T any, P database.Entity[T]] struct {
	responder  Responder
	logger     zerolog.Logger
	repo       *database.ContentRepo[T, P]
	required   []string
	dateFields []string
}

func newContentHandler[T any, P database.Entity[T]](repo *database.ContentRepo[T, P]) *contentHandler[T, P] {
	logger := log.With().Str("handlerName", repo.Collection()+"Handler").Logger()

	return &contentHandler[T, P]{
		responder:  NewResponder(logger),
		logger:     logger,
		repo:       repo,
		required:   models.RequiredFields[repo.Collection()],
		dateFields: models.DateFields[repo.Collection()],
	}
}

// list returns every record of the collection, drafts included, ascending by order.
func (h *contentHandler[T, P]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, items)
	}
}

func (h *contentHandler[T, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if item == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.repo.Kind()))
			return
		}
		h.responder.WriteJSON(w, item)
	}
}

// create checks required fields in their declared order before anything is stored.
func (h *contentHandler[T, P]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readJSONObject(w, r, h.repo.Kind())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := models.NormalizeDates(payload, h.dateFields); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if field, missing := models.MissingField(payload, h.required); missing {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		item := P(new(T))
		if err := bindJSON(payload, item, h.repo.Kind()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := h.repo.Create(r.Context(), item)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, createResponse{Success: true, ID: id})
	}
}

// update applies a partial document. Required fields may be changed but not cleared.
func (h *contentHandler[T, P]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readJSONObject(w, r, h.repo.Kind())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := models.NormalizeDates(payload, h.dateFields); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		for _, field := range h.required {
			value, present := payload[field]
			if !present {
				continue
			}
			if _, missing := models.MissingField(map[string]any{field: value}, []string{field}); missing {
				h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
				return
			}
		}

		if _, err := h.repo.Update(r.Context(), chi.URLParam(r, "id"), payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w)
	}
}

func (h *contentHandler[T, P]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w)
	}
}

// reorder takes {"orderedIds": [...]} and gives each listed record its index as order.
func (h *contentHandler[T, P]) reorder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readJSONObject(w, r, "reorder")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		raw, ok := payload["orderedIds"].([]any)
		if !ok {
			h.responder.WriteError(w, errs.NewInvalidFieldError("orderedIds", "must be an array"))
			return
		}
		ids := make([]string, 0, len(raw))
		for _, v := range raw {
			id, ok := v.(string)
			if !ok {
				h.responder.WriteError(w, errs.NewInvalidFieldError("orderedIds", "must contain only string ids"))
				return
			}
			ids = append(ids, id)
		}

		if err := h.repo.Reorder(r.Context(), ids); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w)
	}
}
