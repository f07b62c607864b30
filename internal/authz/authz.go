// Package authz maps roles to (resource, action) capabilities through a
// casbin enforcer. Route guards ask the enforcer instead of comparing role
// strings inline, so the allowed-action set per role lives in one place.
package authz

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleEmployee = "employee"
	RoleHR       = "hr"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// capability grants per role. HR inherits everything employees can do.
var policies = [][]string{
	{RoleEmployee, "leave", "create"},
	{RoleEmployee, "leave", "read"},
	{RoleEmployee, "leave", "cancel"},
	{RoleEmployee, "balance", "read"},
	{RoleEmployee, "holiday", "read"},
	{RoleEmployee, "leave_type", "read"},
	{RoleEmployee, "employee", "read"},

	{RoleHR, "leave", "approve"},
	{RoleHR, "employee", "list"},
	{RoleHR, "employee", "manage"},
	{RoleHR, "leave_type", "manage"},
	{RoleHR, "holiday", "manage"},
	{RoleHR, "dashboard", "read"},
}

type Authorizer interface {
	Can(role, resource, action string) (bool, error)
}

type enforcerAuthorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds an in-memory enforcer seeded with the static role
// capability set.
func NewAuthorizer() (Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	if _, err := e.AddGroupingPolicy(RoleHR, RoleEmployee); err != nil {
		return nil, err
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &enforcerAuthorizer{enforcer: e}, nil
}

func (a *enforcerAuthorizer) Can(role, resource, action string) (bool, error) {
	return a.enforcer.Enforce(role, resource, action)
}
