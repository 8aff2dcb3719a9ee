package handler

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"task-api/internal/service"
	"task-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Unknown errors are
// recorded on the context for the request logger and reported as 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var validationErr *utils.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.UnprocessableEntity(c, "The given data was invalid.", validationErr.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrInvalidToken):
		utils.Unauthorized(c, "Unauthenticated.")
	case errors.Is(err, service.ErrForbidden):
		utils.Forbidden(c, "Unauthorized")
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, capitalize(err.Error())+".")
	case errors.Is(err, service.ErrEmailTaken):
		utils.Conflict(c, "The email has already been taken.")
	case errors.Is(err, service.ErrConflict):
		utils.Conflict(c, capitalize(err.Error())+".")
	default:
		utils.InternalError(c, "Server error")
	}
}

// respondBindError reports request binding failures: field validation
// failures as 422, malformed bodies as 400
func respondBindError(c *gin.Context, err error) {
	formatted := utils.FormatValidationError(err)
	var validationErr *utils.ValidationError
	if errors.As(formatted, &validationErr) {
		respondError(c, validationErr)
		return
	}
	_ = c.Error(err)
	utils.BadRequest(c, "Malformed request body.")
}

// emptyBody reports a bind failure caused only by a missing request body.
// Partial updates treat it as a request changing nothing.
func emptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}

// paramID parses a numeric path parameter. Non-numeric ids cannot match a
// record so they are reported as not found.
func paramID(c *gin.Context, name string, notFound error) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, notFound)
		return 0, false
	}
	return uint(id), true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
