package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with a message and returns it unchanged.
// This function ensures that storage write failures reach the log with
// their goerr values and stack.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// StatusCode maps domain errors to HTTP status codes
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidIndex):
		return http.StatusNotFound
	case errors.Is(err, model.ErrDuplicateObject):
		return http.StatusConflict
	case errors.Is(err, model.ErrImportValidation),
		errors.Is(err, model.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidWeight),
		errors.Is(err, model.ErrInvalidTier),
		errors.Is(err, model.ErrInvalidCriterion),
		errors.Is(err, model.ErrInvalidOption):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleHTTP logs the error and writes a JSON error response with the
// status derived from the error.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	HandleHTTPStatus(ctx, w, err, StatusCode(err))
}

// HandleHTTPStatus logs the error and writes a JSON error response with
// the given status
func HandleHTTPStatus(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
