package service

import (
	"unicode"

	"github.com/tawseel-next/internal/config"
)

// PasswordPolicyError names the broken rule; Key and Args build the translated message.
// errors.Is(err, ErrWeakPassword) holds for every policy error.
type PasswordPolicyError struct {
	key  string
	args []interface{}
}

func (e *PasswordPolicyError) Error() string { return e.key }

func (e *PasswordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

// Key i18n message key
func (e *PasswordPolicyError) Key() string { return e.key }

// Args message arguments
func (e *PasswordPolicyError) Args() []interface{} { return e.args }

type charClasses struct {
	upper, lower, digit, special bool
}

func classify(password string) charClasses {
	var cc charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			cc.upper = true
		case unicode.IsLower(r):
			cc.lower = true
		case unicode.IsDigit(r):
			cc.digit = true
		case unicode.IsSpace(r):
		default:
			cc.special = true
		}
	}
	return cc
}

// validatePassword checks length first, then the required character classes in a fixed order
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return &PasswordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	cc := classify(password)
	rules := []struct {
		required bool
		present  bool
		key      string
	}{
		{policy.RequireUpper, cc.upper, "error.password_require_upper"},
		{policy.RequireLower, cc.lower, "error.password_require_lower"},
		{policy.RequireNumber, cc.digit, "error.password_require_number"},
		{policy.RequireSpecial, cc.special, "error.password_require_special"},
	}
	for _, rule := range rules {
		if rule.required && !rule.present {
			return &PasswordPolicyError{key: rule.key}
		}
	}
	return nil
}
