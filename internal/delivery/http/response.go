package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orderhub/catalog-service/internal/entity"
)

// respondError maps a core error to its HTTP status. Expected conditions
// (not found, forbidden, validation) pass their message through; anything
// else is an internal fault whose detail stays in the logs.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var (
		ve *entity.ValidationError
		ce *entity.ConfigError
	)

	switch {
	case errors.Is(err, entity.ErrCategoryNotFound),
		errors.Is(err, entity.ErrProductNotFound),
		errors.Is(err, entity.ErrToppingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, entity.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": entity.ErrForbidden.Error()})

	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message})

	case errors.As(err, &ce):
		logger.Error("Configuration failure", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service misconfigured"})

	default:
		logger.Error("Request failed", "method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
