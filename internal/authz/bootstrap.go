package authz

import (
	"fmt"

	"github.com/tawseel-next/internal/constants"
)

// roleStaff is inherited by every staff role.
const roleStaff = "staff"

// RoleSeed builtin role definition
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

var orderReadPolicies = []Policy{
	{Object: "/orders", Action: "GET"},
	{Object: "/orders/:id", Action: "GET"},
	{Object: "/orders/barcode", Action: "GET"},
	{Object: "/orders/:id/history", Action: "GET"},
}

var directoryReadPolicies = []Policy{
	{Object: "/drivers", Action: "GET"},
	{Object: "/drivers/:id", Action: "GET"},
}

func withPolicies(groups ...[]Policy) []Policy {
	var out []Policy
	for _, group := range groups {
		out = append(out, group...)
	}
	return out
}

// BuiltinRoleSeeds role matrix; admin bypasses enforcement and has no rules here
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: roleStaff,
			Policies: []Policy{
				{Object: "/dashboard/stats", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleOrderSearch,
			Inherits: []string{roleStaff},
			Policies: withPolicies(orderReadPolicies),
		},
		{
			Role:     constants.RoleDataEntry,
			Inherits: []string{roleStaff},
			Policies: withPolicies(orderReadPolicies, directoryReadPolicies, []Policy{
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/:id", Action: "PUT"},
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: "/orders/:id/label.png", Action: "GET"},
				{Object: "/cities", Action: "GET"},
				{Object: "/cities/:id", Action: "GET"},
				{Object: "/data-management/import", Action: "POST"},
				{Object: "/data-management/export", Action: "GET"},
				{Object: "/data-management/export/xlsx", Action: "GET"},
				{Object: "/data-management/template", Action: "GET"},
			}),
		},
		{
			Role:     constants.RoleAccounts,
			Inherits: []string{roleStaff},
			Policies: withPolicies(orderReadPolicies, directoryReadPolicies, []Policy{
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: "/orders/:id/driver", Action: "PUT"},
				{Object: "/orders/bulk-status", Action: "POST"},
				{Object: "/orders/bulk-assign", Action: "POST"},
				{Object: "/delegate-sheets", Action: "*"},
				{Object: "/delegate-sheets/scan", Action: "GET"},
				{Object: "/delegate-sheets/:id", Action: "GET"},
				{Object: "/delegate-sheets/:id/qrcode.png", Action: "GET"},
				{Object: "/delegate-sheets/:id/print.xlsx", Action: "GET"},
				{Object: "/dashboard/drivers", Action: "GET"},
			}),
		},
		{
			Role:     constants.RoleInventory,
			Inherits: []string{roleStaff},
			Policies: []Policy{
				{Object: "/products", Action: "*"},
				{Object: "/products/:id", Action: "*"},
				{Object: "/products/:id/stock", Action: "POST"},
			},
		},
	}
}

// BootstrapBuiltinRoles creates builtin roles, inheritance links and rules; idempotent
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
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

// SyncUserRole links a user to the casbin role matching their staff role
func (s *Service) SyncUserRole(userID uint, role string) error {
	if role == "" || role == constants.RoleAdmin {
		return s.SetUserRoles(userID, nil)
	}
	return s.SetUserRoles(userID, []string{role})
}
