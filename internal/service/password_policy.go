package service

import (
	"unicode"

	"github.com/vendor-payments/internal/config"
)

// passwordPolicyError 携带具体违规项的 i18n key，errors.Is 上仍视为 ErrWeakPassword。
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string { return e.key }

func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }

func (e passwordPolicyError) Key() string { return e.key }

func (e passwordPolicyError) Args() []interface{} { return e.args }

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	enabled := policy.MinLength > 0 ||
		policy.RequireUpper || policy.RequireLower ||
		policy.RequireNumber || policy.RequireSpecial
	if !enabled {
		return nil
	}

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	var upper, lower, number, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			number = true
		default:
			special = true
		}
	}

	switch {
	case policy.RequireUpper && !upper:
		return passwordPolicyError{key: "error.password_require_upper"}
	case policy.RequireLower && !lower:
		return passwordPolicyError{key: "error.password_require_lower"}
	case policy.RequireNumber && !number:
		return passwordPolicyError{key: "error.password_require_number"}
	case policy.RequireSpecial && !special:
		return passwordPolicyError{key: "error.password_require_special"}
	}
	return nil
}
