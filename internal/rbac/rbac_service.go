package rbac

import (
	"fmt"
	"sort"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

type Service interface {
	Enforce(req EnforceRequest) (bool, error)
	Permissions(level int) (PermissionsResponse, error)
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewEnforcer builds the in-memory ladder: role inheritance plus the default policy table.
func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create rbac enforcer: %w", err)
	}

	for i := 1; i < len(ladder); i++ {
		if _, err := e.AddGroupingPolicy(ladder[i].role, ladder[i-1].role); err != nil {
			return nil, fmt.Errorf("add role inheritance %s: %w", ladder[i].role, err)
		}
	}
	for _, p := range defaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	return e, nil
}

func NewService(enforcer *casbin.SyncedEnforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	role := RoleForLevel(req.Level)
	if role == "" {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.Int("level", req.Level),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Permissions(level int) (PermissionsResponse, error) {
	role := RoleForLevel(level)
	resp := PermissionsResponse{Role: role, Level: level, Permissions: []PermissionResponse{}}
	if role == "" {
		return resp, nil
	}

	perms, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return PermissionsResponse{}, err
	}
	for _, p := range perms {
		if len(p) < 3 {
			continue
		}
		resp.Permissions = append(resp.Permissions, PermissionResponse{Resource: p[1], Action: p[2]})
	}
	sort.Slice(resp.Permissions, func(i, j int) bool {
		if resp.Permissions[i].Resource != resp.Permissions[j].Resource {
			return resp.Permissions[i].Resource < resp.Permissions[j].Resource
		}
		return resp.Permissions[i].Action < resp.Permissions[j].Action
	})
	return resp, nil
}
