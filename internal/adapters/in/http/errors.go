package http

import (
	"errors"
	"net/http"

	"okdelivery/internal/core/application/usecases/commands"
	"okdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application errors onto the JSON error contract: 404 for
// unknown entities, 422 for validation failures (with a per-field errors map
// where the failing parameter is known), 401 for a rejected tracker secret,
// 500 for everything else.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, commands.ErrNoPendingPackages):
		return ctx.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})

	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{
			Message: err.Error(),
			Errors:  fieldErrors(err),
		})

	case errors.Is(err, errs.ErrUnauthorized):
		return ctx.JSON(http.StatusUnauthorized, errorResponse{Message: err.Error()})

	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

// fieldErrors extracts parameter names from the structured validation errors
// so clients get a field-keyed errors map alongside the message.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var invalidErr *errs.ValueIsInvalidError
	if errors.As(err, &invalidErr) {
		fields[invalidErr.ParamName] = invalidErr.Error()
	}

	var requiredErr *errs.ValueIsRequiredError
	if errors.As(err, &requiredErr) {
		fields[requiredErr.ParamName] = requiredErr.Error()
	}

	var rangeErr *errs.ValueIsOutOfRangeError
	if errors.As(err, &rangeErr) {
		fields[rangeErr.ParamName] = rangeErr.Error()
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
