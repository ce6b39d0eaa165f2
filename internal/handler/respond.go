package handler

import (
	"errors"
	"fmt"
	"golf-coach/internal/common"
	"golf-coach/internal/logger"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fail maps service errors onto status codes. Anything unrecognised is a
// 500 with a generic message; the cause only goes to the log.
func fail(c *gin.Context, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "fields": ve.Fields})
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "GHIN integration is not configured", "code": "setup_required",
		})
	case errors.Is(err, common.ErrAuthFailed):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "GHIN authorization failed, please reconnect", "code": "reconnect_required",
		})
	case errors.Is(err, common.ErrUpstream):
		logger.Ctx(c.Request.Context()).Warn("http.upstream", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service error"})
	default:
		logger.Ctx(c.Request.Context()).Error("http.internal", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bind decodes the JSON body into req and answers 400 itself on failure.
func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldPath(fe)] = describe(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	return false
}

// fieldPath drops the struct name prefix: "CreateRoundRequest.totalScore"
// becomes "totalScore".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "fields": gin.H{"id": "must be a positive integer"}})
		return 0, false
	}
	return id, true
}
