package nameconv

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Presence tells whether a rule must be satisfied for a name to be valid.
type Presence bool

const (
	Mandatory Presence = false
	Optional  Presence = true
)

func (p Presence) String() string {
	if p == Optional {
		return "optional"
	}
	return "mandatory"
}

// Kind identifies the variant of a Rule.
type Kind int

const (
	// KindPattern matches a token against one regular expression.
	KindPattern Kind = iota
	// KindAlternative matches a token against an ordered list of regular
	// expressions; the first one that matches wins.
	KindAlternative
	// KindComposed splits a token on its own separator and evaluates the
	// pieces against a nested Convention.
	KindComposed
)

func (k Kind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindAlternative:
		return "alternative"
	case KindComposed:
		return "composed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Rule is a named matcher that claims at most one token of a name.
//
// The set of implementations is closed: *PatternRule, *AlternativeRule and
// *ComposedRule. Rule definitions are immutable once built and hold no
// per-evaluation state, so one Rule may be shared by many conventions and
// evaluated from many goroutines.
type Rule interface {
	Name() string
	Presence() Presence
	Kind() Kind

	// match reports whether the rule accepts token and, if so, the value it
	// parsed out of it.
	match(token string) (Value, bool)
}

// IsOptional reports whether r may remain unsatisfied.
func IsOptional(r Rule) bool { return r.Presence() == Optional }

var (
	errEmptyRuleName = errors.New("rule name is required")
	errEmptyExpr     = errors.New("regular expression is empty")
)

// PatternRule matches a token against a single regular expression.
// A substring match is enough; anchor the expression to require the whole
// token.
type PatternRule struct {
	name     string
	presence Presence
	re       *regexp.Regexp
}

// NewPattern compiles expr and returns a PatternRule. expr must not be
// empty; use `.*` for a rule that accepts any token.
func NewPattern(name, expr string, presence Presence) (*PatternRule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errEmptyRuleName
	}
	if expr == "" {
		return nil, fmt.Errorf("rule %q: %w", name, errEmptyExpr)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("rule %q: invalid regular expression: %w", name, err)
	}
	return &PatternRule{name: name, presence: presence, re: re}, nil
}

// MustPattern is like NewPattern but panics on error. It is meant for
// conventions declared in package-level variables.
func MustPattern(name, expr string, presence Presence) *PatternRule {
	r, err := NewPattern(name, expr, presence)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *PatternRule) Name() string       { return r.name }
func (r *PatternRule) Presence() Presence { return r.presence }
func (r *PatternRule) Kind() Kind         { return KindPattern }

// Expr returns the source text of the rule's regular expression.
func (r *PatternRule) Expr() string { return r.re.String() }

func (r *PatternRule) match(token string) (Value, bool) {
	loc := r.re.FindStringIndex(token)
	if loc == nil {
		return Value{}, false
	}
	return TextValue(token[loc[0]:loc[1]]), true
}

// AlternativeRule matches a token against an ordered list of regular
// expressions and commits to the first one that matches. It lets one field
// accept several spellings, e.g. a two-digit variant or an alphabetic one.
type AlternativeRule struct {
	name     string
	presence Presence
	res      []*regexp.Regexp
}

// NewAlternative compiles exprs in order and returns an AlternativeRule.
func NewAlternative(name string, exprs []string, presence Presence) (*AlternativeRule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errEmptyRuleName
	}
	if len(exprs) == 0 {
		return nil, fmt.Errorf("rule %q: at least one regular expression is required", name)
	}
	res := make([]*regexp.Regexp, 0, len(exprs))
	for i, expr := range exprs {
		if expr == "" {
			return nil, fmt.Errorf("rule %q: regular expression [%d]: %w", name, i, errEmptyExpr)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: invalid regular expression [%d]: %w", name, i, err)
		}
		res = append(res, re)
	}
	return &AlternativeRule{name: name, presence: presence, res: res}, nil
}

// MustAlternative is like NewAlternative but panics on error.
func MustAlternative(name string, exprs []string, presence Presence) *AlternativeRule {
	r, err := NewAlternative(name, exprs, presence)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *AlternativeRule) Name() string       { return r.name }
func (r *AlternativeRule) Presence() Presence { return r.presence }
func (r *AlternativeRule) Kind() Kind         { return KindAlternative }

// Exprs returns the source text of the rule's regular expressions in
// evaluation order.
func (r *AlternativeRule) Exprs() []string {
	out := make([]string, len(r.res))
	for i, re := range r.res {
		out[i] = re.String()
	}
	return out
}

func (r *AlternativeRule) match(token string) (Value, bool) {
	for _, re := range r.res {
		if loc := re.FindStringIndex(token); loc != nil {
			return TextValue(token[loc[0]:loc[1]]), true
		}
	}
	return Value{}, false
}

// ComposedRule splits a token on the separator of a nested Convention and
// evaluates the pieces against it. The rule accepts the token only when the
// nested evaluation succeeds, i.e. every mandatory nested rule is met.
//
// The nested convention must not be modified once the rule is in use.
type ComposedRule struct {
	name     string
	presence Presence
	nested   *Convention
}

// NewComposed returns a ComposedRule over nested. Convention.Add rejects
// the rule if nested leads back to the convention it is added to.
func NewComposed(name string, nested *Convention, presence Presence) (*ComposedRule, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errEmptyRuleName
	}
	if nested == nil {
		return nil, fmt.Errorf("rule %q: nested convention is nil", name)
	}
	return &ComposedRule{name: name, presence: presence, nested: nested}, nil
}

// MustComposed is like NewComposed but panics on error.
func MustComposed(name string, nested *Convention, presence Presence) *ComposedRule {
	r, err := NewComposed(name, nested, presence)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *ComposedRule) Name() string       { return r.name }
func (r *ComposedRule) Presence() Presence { return r.presence }
func (r *ComposedRule) Kind() Kind         { return KindComposed }

// Convention returns the nested convention.
func (r *ComposedRule) Convention() *Convention { return r.nested }

func (r *ComposedRule) match(token string) (Value, bool) {
	m, err := r.nested.Evaluate(token)
	if err != nil {
		return Value{}, false
	}
	return NestedValue(m), true
}
