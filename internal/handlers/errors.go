package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clothing-catalog/internal/repository"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps storage outcomes onto HTTP statuses. Anything unknown is a
// storage fault and becomes a 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return http.StatusBadRequest, "invalid product ID"
	case errors.Is(err, repository.ErrEmptyQuery):
		return http.StatusBadRequest, msgEmptyQuery
	case errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, repository.ErrBannerExists):
		return http.StatusConflict, "banner already exists"
	}
	return http.StatusInternalServerError, "internal server error"
}

// respondError writes the mapped status and logs storage faults.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error("storage request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
