package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
)

// publicHandler serves published records only. Drafts and inactive records look like missing ones.
type publicHandler[T any, P database.Entity[T]] struct {
	responder Responder
	logger    zerolog.Logger
	repo      *database.ContentRepo[T, P]
	cache     *cache.Cache
}

func newPublicHandler[T any, P database.Entity[T]](repo *database.ContentRepo[T, P], c *cache.Cache) *publicHandler[T, P] {
	logger := log.With().Str("handlerName", "publicHandler").Str("collection", repo.Collection()).Logger()

	return &publicHandler[T, P]{
		responder: NewResponder(logger),
		logger:    logger,
		repo:      repo,
		cache:     c,
	}
}

func (h *publicHandler[T, P]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var items []T
		err := h.cache.PublicList(r.Context(), h.repo.Collection(), &items, func() error {
			published, err := h.repo.ListPublished(r.Context())
			if err != nil {
				return err
			}
			items = published
			return nil
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		views := make([]any, 0, len(items))
		for i := range items {
			views = append(views, P(&items[i]).PublicView())
		}
		h.responder.WriteJSON(w, views)
	}
}

func (h *publicHandler[T, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if item == nil || !P(item).Published() {
			h.responder.WriteError(w, errs.NewNotFound(h.repo.Kind()))
			return
		}
		h.responder.WriteJSON(w, P(item).PublicView())
	}
}
