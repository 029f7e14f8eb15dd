package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-backend/errs"
)

// maxBodySize caps JSON request bodies.
const maxBodySize = 1 << 20

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first so a failure can still become a clean 500
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteSuccess(w http.ResponseWriter) {
	r.WriteJSON(w, successResponse{Success: true})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Internal Server Error",
			Status: "error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Int("status", apiErr.StatusCode).Msg("request failed")
	}

	response := ErrorResponse{
		Error:   apiErr.Error(),
		Status:  "error",
		Field:   apiErr.Field,
		Details: apiErr.Details,
	}
	if apiErr.Cause != nil {
		response.Cause = apiErr.GetFullError()
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}

// readJSONObject decodes a JSON object body into a generic map.
func readJSONObject(w http.ResponseWriter, req *http.Request, payloadType string) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.NewMaxBodySizeExceededError(maxBodySize)
		}
		return nil, errs.NewBadRequestError("failed to read request body")
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, errs.NewMalformedPayloadError(payloadType, err)
	}
	return payload, nil
}

// bindJSON converts a decoded body into dest.
func bindJSON(payload map[string]any, dest any, payloadType string) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errs.NewMalformedPayloadError(payloadType, err)
	}
	return nil
}
