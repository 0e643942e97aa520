package rbac_http

import (
	"net/http"

	"go-elra/internal/middleware"
	"go-elra/internal/rbac"
	"go-elra/internal/shared/apperror"
	"go-elra/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service rbac.Service
}

func NewHandler(service rbac.Service) *Handler {
	return &Handler{service: service}
}

// MyPermissions lists what the caller's role rung may do, so clients can hide actions up front.
func (h *Handler) MyPermissions(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}

	resp, err := h.service.Permissions(actor.RoleLevel())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Enforce(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
		return
	}

	var req rbac.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, "VALIDATION_ERROR", appErr.Message, err.Error())
		return
	}
	// Callers may only ask about themselves.
	req.Level = actor.RoleLevel()

	allowed, err := h.service.Enforce(req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, rbac.EnforceResponse{Allowed: allowed}, nil)
}
