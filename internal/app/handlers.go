package app

import (
	"net/http"
	"time"

	"github.com/ak/larder/internal/app/middleware"
	apperrors "github.com/ak/larder/internal/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var version = "0.1.0"

// APIResponse is the standard API response format
type APIResponse struct {
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Meta      *APIMeta  `json:"meta,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp string    `json:"timestamp"`
}

// APIError is the error member of APIResponse
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type APIMeta struct {
	Total int `json:"total"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// respond writes the envelope shared by every /api route
func respond(c *gin.Context, status int, resp APIResponse) {
	resp.RequestID = middleware.GetRequestID(c)
	resp.Timestamp = now()
	c.JSON(status, resp)
}

func successResponse(c *gin.Context, data any) {
	respond(c, http.StatusOK, APIResponse{Success: true, Data: data})
}

func createdResponse(c *gin.Context, data any) {
	respond(c, http.StatusCreated, APIResponse{Success: true, Data: data})
}

func listResponse(c *gin.Context, data any, total int) {
	respond(c, http.StatusOK, APIResponse{Success: true, Data: data, Meta: &APIMeta{Total: total}})
}

func errorResponse(c *gin.Context, status int, code, message string, details any) {
	respond(c, status, APIResponse{
		Error: &APIError{Code: code, Message: message, Details: details},
	})
}

// handleError writes err as an error response. Errors without a code come
// from the record store.
func (a *Application) handleError(c *gin.Context, err error) {
	apiErr := apperrors.FromError(err)
	if apiErr.Code == apperrors.ErrInternal {
		apiErr = apperrors.DatabaseError(err)
	}
	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		a.logger.Error("Request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	errorResponse(c, apiErr.HTTPStatus, string(apiErr.Code), apiErr.Message, apiErr.Details)
}

func bindError(c *gin.Context, err error) {
	errorResponse(c, http.StatusBadRequest, string(apperrors.ErrInvalidInput), err.Error(), nil)
}

// Health and info endpoints

func (a *Application) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": now(),
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	if err := a.ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"reason":    "record store unavailable",
			"timestamp": now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"driver":    a.config.Store.Driver,
		"timestamp": now(),
	})
}

func (a *Application) apiInfo(c *gin.Context) {
	successResponse(c, gin.H{
		"name":        a.config.App.Name,
		"version":     version,
		"description": "Recipe catalog, pantry inventory and grocery list",
		"store":       a.config.Store.Driver,
	})
}
