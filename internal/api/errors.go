package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"user-dashboard-service/internal/service"
)

// errorJSON writes err as {"error": message} with the status its kind maps to.
func errorJSON(c echo.Context, err error) error {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message})
	case errors.As(err, &nf):
		return c.JSON(http.StatusNotFound, map[string]string{"error": nf.Message})
	case errors.Is(err, service.ErrSessionInvalid):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
