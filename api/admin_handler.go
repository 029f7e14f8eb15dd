package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
)

const maxUploadSize = 10 << 20

// ObjectUploader stores an uploaded file and returns its public URL.
type ObjectUploader interface {
	Upload(ctx context.Context, prefix, filename, contentType string, body io.Reader) (string, error)
}

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	database  database.Database
	uploader  ObjectUploader
}

func newAdminHandler(db database.Database, uploader ObjectUploader) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		database:  db,
		uploader:  uploader,
	}
}

// summary returns the dashboard counts.
func (h adminHandler) summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := h.database.Summary(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, summary)
	}
}

// upload stores the multipart field "file" and returns its URL.
func (h adminHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewServiceDisabledError("Uploads"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		url, err := h.uploader.Upload(ctx, "uploads", header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		event := h.logger.Info().Str("url", url).Int64("size", header.Size)
		if s, err := ctxGetSession(r.Context()); err == nil {
			event = event.Str("subject", s.Subject)
		}
		event.Msg("File uploaded")

		h.responder.WriteJSON(w, uploadResponse{Success: true, URL: url})
	}
}

type healthHandler struct {
	responder   Responder
	database    database.Database
	startupTime time.Time
	snapshots   map[string]bool
}

func newHealthHandler(db database.Database, startupTime time.Time, snapshots map[string]bool) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		database:    db,
		startupTime: startupTime,
		snapshots:   snapshots,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := h.database.Ping(ctx); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		snapshots := h.snapshots
		if snapshots == nil {
			snapshots = map[string]bool{}
		}
		h.responder.WriteJSON(w, healthResponse{
			Status:    "ok",
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
			Snapshots: snapshots,
		})
	}
}
