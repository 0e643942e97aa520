package directory_http

import (
	"net/http"

	"go-elra/internal/directory"
	"go-elra/internal/shared/apperror"
	"go-elra/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service directory.Service
}

func NewHandler(service directory.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListDepartments(c *gin.Context) {
	resp, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
