package nameconv

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error in this package matches exactly one of
// these with errors.Is, so callers can branch on the failure kind without
// a type assertion.
var (
	ErrDuplicateName   = errors.New("duplicate rule name")
	ErrTooManyTokens   = errors.New("too many tokens")
	ErrNotEnoughTokens = errors.New("not enough tokens")
	ErrUnmatchedToken  = errors.New("unmatched token")
	ErrMissingRules    = errors.New("mandatory rules not met")
	ErrBadValue        = errors.New("value does not match rule")
	ErrUnknownRule     = errors.New("unknown rule")
)

// DuplicateNameError is returned by Convention.Add when a rule with the same
// name is already registered.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("rule %q: cannot have two rules with the same name", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// TooManyTokensError is returned when the name splits into more tokens than
// the convention has rules. No rule is evaluated.
type TooManyTokensError struct {
	Tokens int
	Rules  int
}

func (e *TooManyTokensError) Error() string {
	return fmt.Sprintf("the name has too many tokens: %d tokens, %d rules", e.Tokens, e.Rules)
}

func (e *TooManyTokensError) Is(target error) bool { return target == ErrTooManyTokens }

// NotEnoughTokensError is returned when the name splits into fewer tokens
// than the convention has mandatory rules. No rule is evaluated.
type NotEnoughTokensError struct {
	Tokens    int
	Mandatory int
}

func (e *NotEnoughTokensError) Error() string {
	return fmt.Sprintf("the name doesn't have enough tokens: %d tokens, %d mandatory rules", e.Tokens, e.Mandatory)
}

func (e *NotEnoughTokensError) Is(target error) bool { return target == ErrNotEnoughTokens }

// UnmatchedTokenError is returned when a token is accepted by none of the
// rules that were still unsatisfied when it was reached.
type UnmatchedTokenError struct {
	Token string
	Index int // 0-based position of the token in the name
}

func (e *UnmatchedTokenError) Error() string {
	return fmt.Sprintf("token %q (position %d) doesn't match any of the naming convention rules", e.Token, e.Index)
}

func (e *UnmatchedTokenError) Is(target error) bool { return target == ErrUnmatchedToken }

// MissingRulesError is returned when every token was consumed but some
// mandatory rules were left unsatisfied, typically because an optional rule
// declared earlier claimed a token first.
type MissingRulesError struct {
	Rules []string
}

func (e *MissingRulesError) Error() string {
	return fmt.Sprintf("mandatory rules not met: %s", strings.Join(e.Rules, ", "))
}

func (e *MissingRulesError) Is(target error) bool { return target == ErrMissingRules }

// BadValueError is returned by Convention.Set when the new value is not
// accepted by the rule.
type BadValueError struct {
	Rule  string
	Value string
}

func (e *BadValueError) Error() string {
	return fmt.Sprintf("rule %q: value %q doesn't match the rule", e.Rule, e.Value)
}

func (e *BadValueError) Is(target error) bool { return target == ErrBadValue }

// UnknownRuleError is returned when a rule name is not part of the convention.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("rule %q: no such rule", e.Name)
}

func (e *UnknownRuleError) Is(target error) bool { return target == ErrUnknownRule }
