package approvalerrors

import (
	"net/http"

	"go-elra/internal/shared/apperror"
)

var (
	ErrNoApproverFound = apperror.New(
		apperror.CodeNoApproverFound,
		"no approver could be resolved for this request",
		http.StatusBadRequest,
	)
	ErrUnknownRoleLevel = apperror.New(
		apperror.CodeInvalidInput,
		"requester role level is not part of the approval ladder",
		http.StatusBadRequest,
	)
)
