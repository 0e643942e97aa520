package leaveerrors

import (
	"net/http"

	"go-elra/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before end_date",
		http.StatusBadRequest,
	)
	ErrStartDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"start_date cannot be in the past",
		http.StatusBadRequest,
	)
	ErrInvalidDays = apperror.New(
		apperror.CodeInvalidInput,
		"days must be between 1 and the length of the requested period",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"you already have a pending or approved leave request in this period",
		http.StatusConflict,
	)
	ErrConcurrentDecision = apperror.New(
		apperror.CodeConflict,
		"leave request was changed by another approver, reload and try again",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrViewerCannotRequest = apperror.New(
		apperror.CodeForbidden,
		"viewers cannot submit leave requests",
		http.StatusForbidden,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the creator can modify this leave request",
		http.StatusForbidden,
	)
	ErrCancelForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the creator or a super admin can cancel this leave request",
		http.StatusForbidden,
	)
	ErrNotAuthorizedToApprove = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to act on this leave request",
		http.StatusForbidden,
	)
	ErrNotAuthorizedToView = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to view this leave request",
		http.StatusForbidden,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"leave request is no longer pending",
		http.StatusBadRequest,
	)
)
