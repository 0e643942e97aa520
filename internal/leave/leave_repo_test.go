package leave

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, Repository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock, NewRepository(gdb)
}

var overlapQuery = regexp.QuoteMeta(`SELECT count(*) FROM "leave_requests" WHERE employee_id = $1 AND status IN ($2,$3) AND `) +
	`\(?` + regexp.QuoteMeta(`start_date <= $4 AND end_date >= $5`)

func TestLeaveRepository_HasOverlappingRequest(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("inclusive range over live requests", func(t *testing.T) {
		_, mock, repo := setupRepositoryTest(t)
		mock.ExpectQuery(overlapQuery + `\)?$`).
			WithArgs(employeeID, StatusPending, StatusApproved, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		overlaps, err := repo.HasOverlappingRequest(ctx, employeeID, start, end, nil)

		assert.NoError(t, err)
		assert.True(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single day request touching an existing boundary", func(t *testing.T) {
		_, mock, repo := setupRepositoryTest(t)
		mock.ExpectQuery(overlapQuery).
			WithArgs(employeeID, StatusPending, StatusApproved, end, end).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		overlaps, err := repo.HasOverlappingRequest(ctx, employeeID, end, end, nil)

		assert.NoError(t, err)
		assert.True(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update excludes the request itself", func(t *testing.T) {
		_, mock, repo := setupRepositoryTest(t)
		self := uuid.New()
		mock.ExpectQuery(overlapQuery + `\)? AND id <> \$6$`).
			WithArgs(employeeID, StatusPending, StatusApproved, end, start, self).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		overlaps, err := repo.HasOverlappingRequest(ctx, employeeID, start, end, &self)

		assert.NoError(t, err)
		assert.False(t, overlaps)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_UpdateUpsertsApprovals(t *testing.T) {
	ctx := context.Background()
	db, mock, repo := setupRepositoryTest(t)

	hod, hr := uuid.New(), uuid.New()
	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   uuid.New(),
		DepartmentID: uuid.New(),
		LeaveType:    TypeAnnual,
		StartDate:    time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Days:         2,
		Reason:       "family trip",
		Status:       StatusPending,
		Approvals: []LeaveApproval{
			{ID: uuid.New(), ApproverID: hod, Role: "HOD", Status: StatusApproved},
			{ID: uuid.New(), ApproverID: hr, Role: "HR HOD", Status: StatusPending, Position: 1},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET .+ WHERE "id" = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "leave_approvals" .+ VALUES \(.+\),\(.+\) ` +
		regexp.QuoteMeta(`ON CONFLICT ("leave_request_id","approver_id") DO UPDATE SET "role"="excluded"."role"`)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	err = repo.WithTx(tx).Update(ctx, l)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	for _, a := range l.Approvals {
		assert.Equal(t, l.ID, a.LeaveRequestID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("removes approvals then the request", func(t *testing.T) {
		_, mock, repo := setupRepositoryTest(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_approvals" WHERE leave_request_id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_requests" WHERE id = $1`)).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing request", func(t *testing.T) {
		_, mock, repo := setupRepositoryTest(t)
		mock.ExpectExec(`DELETE FROM "leave_approvals"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "leave_requests"`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, id)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_CountByStatus(t *testing.T) {
	_, mock, repo := setupRepositoryTest(t)
	deptID, employeeID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "leave_requests" WHERE (leave_requests.department_id = $1 OR leave_requests.employee_id = $2) GROUP BY`)).
		WithArgs(deptID, employeeID).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(StatusPending, 2).
			AddRow(StatusApproved, 5))

	counts, err := repo.CountByStatus(context.Background(), Scope{DepartmentID: &deptID, EmployeeID: &employeeID})

	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{StatusPending: 2, StatusApproved: 5}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
