package rest

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/l1t48/Test-backend/internal/common"
	"github.com/l1t48/Test-backend/internal/server/services"
)

// Client-visible messages.
const (
	msgUnauthorized       = "Unauthorized."
	msgInvalidCredentials = "Invalid credentials."
	msgEmailTaken         = "Email already in use."
	msgValidation         = "Validation failed."
	msgInvalidBody        = "Invalid request body."
	msgInvalidID          = "Invalid id."
	msgNotFound           = "Not found."
	msgInternal           = "Internal server error."
)

var tagNameOnce sync.Once

// registerValidatorTagNames makes validator report JSON field names, so
// error maps use the same keys clients send.
func registerValidatorTagNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the body into dst and writes a 400 on failure. It
// reports whether the handler may continue.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgValidation, "errors": fields})
		return false
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
	return false
}

// pathID parses the :id parameter as a positive integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgInvalidID})
		return 0, false
	}
	return id, true
}

// writeError maps service errors to responses. Internal causes are logged
// and never sent to the client.
func (s *Server) writeError(c *gin.Context, err error) {
	var fe services.FieldErrors
	switch {
	case errors.As(err, &fe):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgValidation, "errors": fe})
	case errors.Is(err, common.ErrorValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgValidation})
	case errors.Is(err, common.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": msgEmailTaken})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgInvalidCredentials})
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgUnauthorized})
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err, "request_id", c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": msgInternal})
	}
}
