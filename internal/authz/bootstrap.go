package authz

import (
	"fmt"

	"github.com/maekabu-office/internal/constants"
)

// RoleSeed 組み込みロール定義
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 組み込みロール
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleViewer,
			Policies: []Policy{
				{Object: "/*", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleStaff,
			Inherits: []string{constants.RoleViewer},
			Policies: []Policy{
				{Object: "/clients", Action: "*"},
				{Object: "/clients/:id", Action: "*"},
				{Object: "/companies", Action: "*"},
				{Object: "/companies/:id", Action: "*"},
				{Object: "/creators", Action: "*"},
				{Object: "/pf-creators", Action: "*"},
				{Object: "/invoices", Action: "*"},
				{Object: "/invoices/:id", Action: "*"},
				{Object: "/vendor-invoices", Action: "*"},
				{Object: "/upload", Action: "POST"},
			},
		},
		{
			Role:     constants.RoleAccounting,
			Inherits: []string{constants.RoleStaff},
			Policies: []Policy{
				{Object: "/payments", Action: "*"},
				{Object: "/payments/:id", Action: "*"},
				{Object: "/payments/match", Action: "POST"},
				{Object: "/payments/:id/status", Action: "PATCH"},
				{Object: "/bank-transactions", Action: "*"},
			},
		},
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 組み込みロールとポリシーを投入する（既存分は変更しない）
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
