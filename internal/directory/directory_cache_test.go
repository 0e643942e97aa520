package directory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type countingDirectory struct {
	hod, hrHOD, superAdmin *User
	err                    error
	calls                  int
}

func (d *countingDirectory) GetUser(context.Context, uuid.UUID) (*User, error) {
	d.calls++
	return d.hod, d.err
}

func (d *countingDirectory) FindHOD(context.Context, uuid.UUID) (*User, error) {
	d.calls++
	return d.hod, d.err
}

func (d *countingDirectory) FindHRHOD(context.Context) (*User, error) {
	d.calls++
	return d.hrHOD, d.err
}

func (d *countingDirectory) FindSuperAdmin(context.Context) (*User, error) {
	d.calls++
	return d.superAdmin, d.err
}

const testTTL = 10 * time.Minute

func TestCachedDirectory_Hit(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hrHOD := newTestUser(LevelHOD, HRDepartmentName)
	payload, _ := json.Marshal(hrHOD)

	next := &countingDirectory{}
	dir := NewCachedDirectory(next, rdb, testTTL)

	mock.ExpectGet(HRHODCacheKey).SetVal(string(payload))

	got, err := dir.FindHRHOD(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, hrHOD.ID, got.ID)
	assert.Equal(t, LevelHOD, got.RoleLevel())
	assert.Equal(t, 0, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedDirectory_MissStoresResult(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	hod := newTestUser(LevelHOD, "Engineering")
	payload, _ := json.Marshal(hod)
	key := GetHODCacheKey(hod.DepartmentID)

	next := &countingDirectory{hod: hod}
	dir := NewCachedDirectory(next, rdb, testTTL)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, testTTL).SetVal("OK")

	got, err := dir.FindHOD(context.Background(), hod.DepartmentID)
	assert.NoError(t, err)
	assert.Equal(t, hod, got)
	assert.Equal(t, 1, next.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedDirectory_AbsentApproverNotCached(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	next := &countingDirectory{}
	dir := NewCachedDirectory(next, rdb, testTTL)

	mock.ExpectGet(SuperAdminCacheKey).RedisNil()

	got, err := dir.FindSuperAdmin(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedDirectory_RedisFailureFallsThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	admin := newTestUser(LevelSuperAdmin, "Administration")
	payload, _ := json.Marshal(admin)

	next := &countingDirectory{superAdmin: admin}
	dir := NewCachedDirectory(next, rdb, testTTL)

	mock.ExpectGet(SuperAdminCacheKey).SetErr(errors.New("redis down"))
	mock.ExpectSet(SuperAdminCacheKey, payload, testTTL).SetErr(errors.New("redis down"))

	got, err := dir.FindSuperAdmin(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, admin, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedDirectory_LoadError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	dbErr := errors.New("db down")
	dir := NewCachedDirectory(&countingDirectory{err: dbErr}, rdb, testTTL)

	mock.ExpectGet(HRHODCacheKey).RedisNil()

	_, err := dir.FindHRHOD(context.Background())
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedDirectory_WithoutRedis(t *testing.T) {
	hod := newTestUser(LevelHOD, "Engineering")
	next := &countingDirectory{hod: hod}
	dir := NewCachedDirectory(next, nil, 0)

	got, err := dir.FindHOD(context.Background(), hod.DepartmentID)
	assert.NoError(t, err)
	assert.Equal(t, hod, got)

	_, _ = dir.GetUser(context.Background(), hod.ID)
	assert.Equal(t, 2, next.calls)
}
