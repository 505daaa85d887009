package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"lending-core/internal/domain/page"
	"lending-core/pkg/apperror"
)

type listResponse[T any] struct {
	Items []T    `json:"items"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
	Total *int64 `json:"total,omitempty"`
}

// writeError maps usecase errors to status codes; unknown errors are logged and hidden.
func writeError(c echo.Context, log logrus.FieldLogger, err error) error {
	switch {
	case apperror.IsValidation(err):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: apperror.CodeOf(err)})
	case apperror.IsNotFound(err):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: apperror.CodeOf(err)})
	}
	log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}).Error("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate writes the 400/422 response itself and reports whether the handler may continue.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

// pageParams reads skip/limit; limit defaults to page.DefaultLimit and is capped at page.MaxLimit.
func pageParams(c echo.Context) (skip, limit int, err error) {
	limit = page.DefaultLimit
	if err = echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError(); err != nil {
		return 0, 0, err
	}
	if limit > page.MaxLimit {
		limit = page.MaxLimit
	}
	return skip, limit, nil
}

func invalidQuery(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query: skip and limit must be integers"})
}
