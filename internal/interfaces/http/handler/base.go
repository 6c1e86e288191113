package handler

import (
	"errors"
	"net/http"

	"github.com/commerce/backend/internal/domain/shared"
	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/commerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides shared helpers for all HTTP handlers
type BaseHandler struct {
	logger *zap.Logger
}

// NewBaseHandler creates a base handler
func NewBaseHandler(logger *zap.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// HandleError writes a domain error with the mapped HTTP status.
// Unknown errors become 500s without leaking internals.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		if status == http.StatusInternalServerError {
			h.logger.Error("unmapped domain error",
				zap.String("code", domainErr.Code),
				zap.Error(err))
		}
		c.JSON(status, dto.Fail(dto.NormalizeErrorCode(domainErr.Code), domainErr.Message))
		return
	}

	h.logger.Error("internal error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternal, "Internal server error"))
}

// BadRequest writes a 400 for request binding failures
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeValidation, err.Error()))
}

// OK writes a 200 success response
func (h *BaseHandler) OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// Created writes a 201 success response
func (h *BaseHandler) Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// NoContent writes a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ParseUUIDParam reads and validates a UUID path parameter
func (h *BaseHandler) ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeValidation, "Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// BuildFilter converts the common page query into a repository filter
func (h *BaseHandler) BuildFilter(q dto.PageQuery) shared.Filter {
	filter := shared.DefaultFilter()
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}
	if q.OrderBy != "" {
		filter.OrderBy = q.OrderBy
	}
	if q.OrderDir != "" {
		filter.OrderDir = q.OrderDir
	}
	filter.Search = q.Search
	return filter
}

// TenantID returns the tenant from the authenticated context
func (h *BaseHandler) TenantID(c *gin.Context) uuid.UUID {
	return middleware.TenantID(c)
}

// UserID returns the user from the authenticated context
func (h *BaseHandler) UserID(c *gin.Context) uuid.UUID {
	return middleware.UserID(c)
}
