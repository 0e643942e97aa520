package auth

import (
	"net/http"
	"os"
	"strings"

	autherrors "go-elra/internal/auth/errors"
	"go-elra/internal/middleware"
	"go-elra/internal/shared/apperror"
	"go-elra/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, logger: l}
}

// isWebClient decides whether tokens travel in cookies. Browsers send
// X-Client-Type: web; API clients read tokens from the body.
func isWebClient(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("X-Client-Type"), "web")
}

func setTokenCookies(c *gin.Context, pair TokenPair) {
	writeCookie(c, accessCookie, pair.AccessToken, int(AccessTokenTTL.Seconds()))
	writeCookie(c, refreshCookie, pair.RefreshToken, int(RefreshTokenTTL.Seconds()))
}

func clearTokenCookies(c *gin.Context) {
	writeCookie(c, accessCookie, "", -1)
	writeCookie(c, refreshCookie, "", -1)
}

func writeCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
		return
	}

	pair, user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		setTokenCookies(c, pair)
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	user, err := h.service.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var token string
	if isWebClient(c) {
		cookie, err := c.Cookie(refreshCookie)
		if err != nil || cookie == "" {
			h.writeServiceError(c, autherrors.ErrMissingRefreshToken)
			return
		}
		token = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, autherrors.ErrMissingRefreshToken)
			return
		}
		token = req.RefreshToken
	}

	pair, user, err := h.service.RefreshToken(c.Request.Context(), token)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWebClient(c) {
		setTokenCookies(c, pair)
	}
	response.Success(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	clearTokenCookies(c)
	response.SuccessWithMessage(c, http.StatusOK, "Logged out", nil)
}
