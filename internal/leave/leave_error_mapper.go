package leave

import (
	"errors"
	"strings"

	leaveerrors "go-elra/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	overlapConstraint       = "ex_leave_requests_no_overlap"
	approverEntryConstraint = "ux_leave_approvals_request_approver"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23P01" && pgErr.ConstraintName == overlapConstraint:
			return leaveerrors.ErrLeaveOverlap
		case pgErr.Code == "23505" && pgErr.ConstraintName == approverEntryConstraint:
			return leaveerrors.ErrConcurrentDecision
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "conflicting key value") && strings.Contains(errMsg, overlapConstraint) {
		return leaveerrors.ErrLeaveOverlap
	}

	return err
}
