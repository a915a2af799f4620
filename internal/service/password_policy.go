package service

import (
	"unicode"

	"github.com/maekabu-office/internal/config"
)

// passwordPolicyError i18n キーと引数を持つポリシー違反
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string        { return e.key }
func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }
func (e passwordPolicyError) Key() string          { return e.key }
func (e passwordPolicyError) Args() []interface{}  { return e.args }

type charClass struct {
	required bool
	match    func(rune) bool
	key      string
}

func isSymbol(r rune) bool {
	return !unicode.IsUpper(r) && !unicode.IsLower(r) && !unicode.IsDigit(r)
}

// validatePassword 長さと文字種を検査する。条件が全て無効なら何もしない
func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	runes := []rune(password)
	if policy.MinLength > 0 && len(runes) < policy.MinLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{policy.MinLength}}
	}

	classes := []charClass{
		{policy.RequireUpper, unicode.IsUpper, "error.password_require_upper"},
		{policy.RequireLower, unicode.IsLower, "error.password_require_lower"},
		{policy.RequireNumber, unicode.IsDigit, "error.password_require_number"},
		{policy.RequireSpecial, isSymbol, "error.password_require_special"},
	}
	for _, class := range classes {
		if !class.required || containsRune(runes, class.match) {
			continue
		}
		return passwordPolicyError{key: class.key}
	}
	return nil
}

func containsRune(runes []rune, match func(rune) bool) bool {
	for _, r := range runes {
		if match(r) {
			return true
		}
	}
	return false
}
