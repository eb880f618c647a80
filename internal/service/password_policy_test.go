package service

import (
	"errors"
	"testing"

	"github.com/tawseel-next/internal/config"
)

func TestValidatePasswordRules(t *testing.T) {
	strict := config.PasswordPolicyConfig{MinLength: 8, RequireUpper: true, RequireLower: true, RequireNumber: true, RequireSpecial: true}
	cases := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		key      string
	}{
		{name: "empty policy", policy: config.PasswordPolicyConfig{}, password: "a"},
		{name: "too short", policy: strict, password: "Ab1!", key: "error.password_min_length"},
		{name: "arabic runes count once", policy: config.PasswordPolicyConfig{MinLength: 4}, password: "كلمة"},
		{name: "no upper", policy: strict, password: "abcdef1!", key: "error.password_require_upper"},
		{name: "no lower", policy: strict, password: "ABCDEF1!", key: "error.password_require_lower"},
		{name: "no digit", policy: strict, password: "Abcdefg!", key: "error.password_require_number"},
		{name: "space is not special", policy: strict, password: "Abcdef1 ", key: "error.password_require_special"},
		{name: "ok", policy: strict, password: "Abcdef1!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.policy, tc.password)
			if tc.key == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var policyErr *PasswordPolicyError
			if !errors.As(err, &policyErr) || policyErr.Key() != tc.key {
				t.Fatalf("expected %s, got %v", tc.key, err)
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("policy errors should match ErrWeakPassword")
			}
		})
	}
}

func TestPasswordMinLengthCarriesArg(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{MinLength: 10}, "short")
	var policyErr *PasswordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected policy error, got %v", err)
	}
	if args := policyErr.Args(); len(args) != 1 || args[0] != 10 {
		t.Fatalf("unexpected args %v", args)
	}
}
