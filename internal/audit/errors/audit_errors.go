package auditerrors

import (
	"net/http"

	"go-elra/internal/shared/apperror"
)

var (
	ErrInvalidResourceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid resource id",
		http.StatusBadRequest,
	)
	ErrActionRequired = apperror.RequiredField("action")
)
