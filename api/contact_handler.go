package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

const notifyTimeout = 15 * time.Second

// ContactNotifier is told about every stored contact query.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, query models.Query) error
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	queryRepo *database.QueryRepo
	notifier  ContactNotifier
}

func newContactHandler(queryRepo *database.QueryRepo, notifier ContactNotifier) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		queryRepo: queryRepo,
		notifier:  notifier,
	}
}

// submit stores a contact form message and notifies the owner. Once the query is stored the request
// succeeds even if the notification fails.
func (h contactHandler) submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := readJSONObject(w, r, "contact")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if field, missing := models.MissingField(payload, models.RequiredFields["queries"]); missing {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(field))
			return
		}

		var query models.Query
		if err := bindJSON(payload, &query, "contact"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		query.IP = clientIP(r)

		id, err := h.queryRepo.Add(r.Context(), &query)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if h.notifier != nil {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), notifyTimeout)
			if err := h.notifier.NotifyContact(ctx, query); err != nil {
				h.logger.Error().Err(err).Str("queryId", id).Msg("Contact notification failed")
			}
			cancel()
		}

		h.responder.WriteJSON(w, createResponse{Success: true, ID: id})
	}
}
