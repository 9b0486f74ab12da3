package auth

import (
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
	"recipeapp.com/internal/model"
)

// rbacModel matches a role against path patterns such as /api/admin/users/:id.
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
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// AdminPathPattern is the object covered by the default staff policy.
const AdminPathPattern = "/api/admin/*"

// InitCasbin builds the enforcer on a GORM adapter (table casbin_rule) and
// seeds the staff policy when the table is empty.
func InitCasbin(db *gorm.DB) (*casbin.Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("casbin load policy: %w", err)
	}

	policies, err := enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("casbin get policy: %w", err)
	}
	if len(policies) == 0 {
		slog.Info("Casbin: no policies found, seeding staff policy")
		// AddPolicy persists through the adapter
		if _, err := enforcer.AddPolicy(model.RoleStaff, AdminPathPattern, "(GET)|(PATCH)|(DELETE)"); err != nil {
			return nil, fmt.Errorf("casbin seed policy: %w", err)
		}
	}

	slog.Info("Casbin initialized")
	return enforcer, nil
}
