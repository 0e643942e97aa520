package autherrors

import (
	"net/http"

	"go-elra/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrInactiveUser = apperror.New(
		apperror.CodeForbidden,
		"user account is inactive",
		http.StatusForbidden,
	)
	ErrInvalidToken = apperror.New(
		"INVALID_TOKEN",
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		"INVALID_TOKEN",
		"invalid or expired refresh token",
		http.StatusUnauthorized,
	)
	ErrMissingRefreshToken = apperror.New(
		"NO_REFRESH_TOKEN",
		"missing refresh token",
		http.StatusUnauthorized,
	)
	ErrInvalidUserID = apperror.New(
		"INVALID_USER_ID",
		"invalid user id",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate token",
		http.StatusInternalServerError,
	)
)
