package service

import (
	"errors"
	"testing"

	"github.com/tawseel-next/internal/constants"
)

func TestNormalizeUserRole(t *testing.T) {
	cases := map[string]string{
		"user":       constants.RoleOrderSearch,
		" Admin ":    constants.RoleAdmin,
		"data_entry": constants.RoleDataEntry,
	}
	for raw, want := range cases {
		got, err := NormalizeUserRole(raw)
		if err != nil || got != want {
			t.Fatalf("NormalizeUserRole(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := NormalizeUserRole("owner"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestCreateUserRules(t *testing.T) {
	svc := newTestServices(t)
	user, err := svc.users.CreateUser(UserInput{Username: "sam", Email: "sam@example.com", Password: "secret99", Role: "user"})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if user.Role != constants.RoleOrderSearch || svc.roles.synced[user.ID] != constants.RoleOrderSearch {
		t.Fatalf("unexpected role state: %s %+v", user.Role, svc.roles.synced)
	}
	if _, err := svc.users.CreateUser(UserInput{Username: "sam2", Email: "sam@example.com", Password: "secret99", Role: "admin"}); !errors.Is(err, ErrUserEmailExists) {
		t.Fatalf("expected ErrUserEmailExists, got %v", err)
	}
	if _, err := svc.users.CreateUser(UserInput{Username: "weak", Email: "weak@example.com", Password: "abc", Role: "admin"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLastAdminProtected(t *testing.T) {
	svc := newTestServices(t)
	admin, created, err := svc.users.EnsureAdmin("root@example.com", "secret99")
	if err != nil || !created {
		t.Fatalf("ensure admin failed: %v created=%v", err, created)
	}
	if _, created, err := svc.users.EnsureAdmin("root@example.com", "other123"); err != nil || created {
		t.Fatalf("second ensure should be a no-op: %v created=%v", err, created)
	}
	clerk, err := svc.users.CreateUser(UserInput{Username: "clerk", Email: "clerk@example.com", Password: "secret99", Role: constants.RoleDataEntry})
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if err := svc.users.DeleteUser(admin.ID, admin.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("expected ErrCannotDeleteSelf, got %v", err)
	}
	if err := svc.users.DeleteUser(admin.ID, clerk.ID); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin on delete, got %v", err)
	}
	if _, err := svc.users.UpdateUser(admin.ID, UserInput{Role: constants.RoleAccounts}); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin on demotion, got %v", err)
	}

	if _, err := svc.users.UpdateUser(clerk.ID, UserInput{Role: constants.RoleAdmin}); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	demoted, err := svc.users.UpdateUser(admin.ID, UserInput{Role: constants.RoleAccounts})
	if err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if demoted.TokenVersion != admin.TokenVersion+1 || svc.roles.synced[admin.ID] != constants.RoleAccounts {
		t.Fatalf("demotion should revoke tokens and sync role: %+v", demoted)
	}
	if err := svc.users.DeleteUser(admin.ID, clerk.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(svc.roles.removed) != 1 || svc.roles.removed[0] != admin.ID {
		t.Fatalf("expected role removal, got %+v", svc.roles.removed)
	}
}
