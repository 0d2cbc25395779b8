package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lintang-b-s/places-heatmap/pkg"

	"go.uber.org/zap"
)

type envelope map[string]any

const maxBodyBytes = 1 << 20

// writeJSON marshals data structure to encoded JSON response.
func (api *heatmapAPI) writeJSON(w http.ResponseWriter, status int, data any,
	headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')
	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		api.log.Error("failed to write JSON response", zap.Error(err))
		return err
	}

	return nil
}

// readJSON decodes a single json object from the request body into dst, rejecting unknown fields.
func (api *heatmapAPI) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesError.Limit)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func (api *heatmapAPI) logError(r *http.Request, err error) {
	api.log.Error("request failed", zap.String("method", r.Method), zap.String("uri", r.URL.RequestURI()), zap.Error(err))
}

func (api *heatmapAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *heatmapAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "bad_request", err.Error())
}

func (api *heatmapAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.logError(r, err)
	api.errorResponse(w, r, http.StatusInternalServerError, "internal_server_error", pkg.MessageInternalServerError)
}

// ServiceErrorResponse picks the status from the code attached with pkg.WrapErrorf.
func (api *heatmapAPI) ServiceErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var ierr *pkg.Error
	message := err.Error()
	if errors.As(err, &ierr) {
		message = ierr.Message()
	}

	switch pkg.ErrorCode(err) {
	case pkg.ErrBadParamInput:
		api.errorResponse(w, r, http.StatusBadRequest, "bad_request", message)
	case pkg.ErrNotFound:
		api.errorResponse(w, r, http.StatusNotFound, "not_found", message)
	case pkg.ErrConflict:
		api.errorResponse(w, r, http.StatusConflict, "conflict", message)
	case pkg.ErrCapacityExceeded:
		api.errorResponse(w, r, http.StatusTooManyRequests, "capacity_exceeded", message)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}
