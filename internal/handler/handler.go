// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package, resolves
// path parameters and calls the service layer. It is the interface between
// the HTTP request and the core business logic.
package handler

import (
	"strconv"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/labstack/echo/v4"
)

// pathID parses the :id path parameter. A value that is not an integer
// names no stored row, so it is reported as "<entity> not found".
func pathID(c echo.Context, entity string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewNotFoundError(entity+" not found", true, nil)
	}
	return id, nil
}
