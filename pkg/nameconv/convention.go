package nameconv

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Convention is an ordered set of rules sharing one separator. Declaration
// order is match priority: a token is always offered to the earliest
// unsatisfied rule first.
//
// Evaluation does not modify the Convention, so Evaluate may be called from
// many goroutines at once. Add and Remove must not run concurrently with
// Evaluate.
//
// The zero value is an empty Convention using DefaultSeparator and no
// logging.
type Convention struct {
	separator string
	rules     []Rule
	log       *slog.Logger
}

// New returns an empty Convention.
func New(opts ...Option) *Convention {
	cfg := applyOptions(opts)
	return &Convention{
		separator: cfg.separator,
		log:       cfg.logger,
	}
}

// NewWithRules returns a Convention holding rules in the given order.
func NewWithRules(rules []Rule, opts ...Option) (*Convention, error) {
	c := New(opts...)
	if err := c.Add(rules...); err != nil {
		return nil, err
	}
	return c, nil
}

// Separator returns the string names are split on.
func (c *Convention) Separator() string {
	if c.separator == "" {
		return DefaultSeparator
	}
	return c.separator
}

func (c *Convention) logger() *slog.Logger {
	if c.log == nil {
		return discardLogger
	}
	return c.log
}

// Len returns the number of rules.
func (c *Convention) Len() int { return len(c.rules) }

// Rules returns the rules in declaration order.
func (c *Convention) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// MandatoryRules returns the rules that must be satisfied, in declaration
// order.
func (c *Convention) MandatoryRules() []Rule {
	return c.filter(Mandatory)
}

// OptionalRules returns the rules that may remain unsatisfied, in
// declaration order.
func (c *Convention) OptionalRules() []Rule {
	return c.filter(Optional)
}

func (c *Convention) filter(p Presence) []Rule {
	var out []Rule
	for _, r := range c.rules {
		if r.Presence() == p {
			out = append(out, r)
		}
	}
	return out
}

// Add appends rules in order. Adding a rule whose name is already taken
// returns a *DuplicateNameError and leaves the rules added before it in
// place. A composed rule whose nested conventions lead back to c is
// rejected, since evaluating it would never end.
func (c *Convention) Add(rules ...Rule) error {
	for _, r := range rules {
		if r == nil {
			return errors.New("attempt to add nil rule")
		}
		if c.Has(r.Name()) {
			return &DuplicateNameError{Name: r.Name()}
		}
		if cr, ok := r.(*ComposedRule); ok && cr.nested.contains(c, nil) {
			return fmt.Errorf("rule %q: nested convention contains the convention it is added to", r.Name())
		}
		c.rules = append(c.rules, r)
	}
	return nil
}

// contains reports whether target is c or is reachable from c through
// composed rules.
func (c *Convention) contains(target *Convention, seen map[*Convention]bool) bool {
	if c == target {
		return true
	}
	if seen == nil {
		seen = make(map[*Convention]bool)
	}
	if seen[c] {
		return false
	}
	seen[c] = true
	for _, r := range c.rules {
		if cr, ok := r.(*ComposedRule); ok && cr.nested.contains(target, seen) {
			return true
		}
	}
	return false
}

// Remove deletes the named rule. It reports whether a rule was removed.
func (c *Convention) Remove(name string) bool {
	i := c.index(name)
	if i < 0 {
		return false
	}
	c.rules = append(c.rules[:i], c.rules[i+1:]...)
	return true
}

// Has reports whether a rule with the given name exists.
func (c *Convention) Has(name string) bool { return c.index(name) >= 0 }

// Rule returns the named rule.
func (c *Convention) Rule(name string) (Rule, bool) {
	i := c.index(name)
	if i < 0 {
		return nil, false
	}
	return c.rules[i], true
}

func (c *Convention) index(name string) int {
	for i, r := range c.rules {
		if r.Name() == name {
			return i
		}
	}
	return -1
}

// Evaluate splits name on the separator and assigns tokens to rules.
//
// Tokens are taken left to right. Each token goes to the first rule, in
// declaration order, that is not yet satisfied and accepts it. Assignment is
// greedy and never backtracks.
//
// Errors:
//   - *TooManyTokensError: more tokens than rules.
//   - *NotEnoughTokensError: fewer tokens than mandatory rules.
//   - *UnmatchedTokenError: a token no unsatisfied rule accepts.
//   - *MissingRulesError: all tokens consumed but mandatory rules unmet.
//     The partial Match is returned alongside the error.
func (c *Convention) Evaluate(name string) (Match, error) {
	tokens := strings.Split(name, c.Separator())

	if len(tokens) > len(c.rules) {
		err := &TooManyTokensError{Tokens: len(tokens), Rules: len(c.rules)}
		c.logger().Debug("evaluation failed", "name", name, "error", err)
		return Match{}, err
	}
	if mandatory := len(c.MandatoryRules()); len(tokens) < mandatory {
		err := &NotEnoughTokensError{Tokens: len(tokens), Mandatory: mandatory}
		c.logger().Debug("evaluation failed", "name", name, "error", err)
		return Match{}, err
	}

	values := make([]*Value, len(c.rules))
	for i, token := range tokens {
		if !c.assign(token, values) {
			err := &UnmatchedTokenError{Token: token, Index: i}
			c.logger().Debug("evaluation failed", "name", name, "error", err)
			return Match{}, err
		}
	}

	m := c.build(values)
	if !m.ok {
		err := &MissingRulesError{Rules: c.unmet(m)}
		c.logger().Debug("evaluation failed", "name", name, "error", err)
		return m, err
	}
	return m, nil
}

// assign offers token to every unsatisfied rule in declaration order and
// records the value of the first one that accepts it.
func (c *Convention) assign(token string, values []*Value) bool {
	for i, r := range c.rules {
		if values[i] != nil {
			continue
		}
		if v, ok := r.match(token); ok {
			values[i] = &v
			c.logger().Debug("rule met", "rule", r.Name(), "token", token)
			return true
		}
	}
	return false
}

func (c *Convention) build(values []*Value) Match {
	m := Match{
		ok:        true,
		separator: c.Separator(),
		values:    make(map[string]Value, len(values)),
	}
	for i, r := range c.rules {
		if values[i] == nil {
			if r.Presence() == Mandatory {
				m.ok = false
			}
			continue
		}
		m.met = append(m.met, r.Name())
		m.values[r.Name()] = *values[i]
	}
	return m
}

func (c *Convention) unmet(m Match) []string {
	var out []string
	for _, r := range c.rules {
		if r.Presence() == Mandatory && !m.Met(r.Name()) {
			out = append(out, r.Name())
		}
	}
	return out
}

// Reconstruct returns the canonical form of m under c: the formatted values
// of c's rules that m satisfies, in c's declaration order, joined by c's
// separator.
//
// Reconstruct(Evaluate(s)) equals s whenever Evaluate(s) succeeds and the
// tokens of s already appear in declaration order.
func (c *Convention) Reconstruct(m Match) string {
	parts := make([]string, 0, len(c.rules))
	for _, r := range c.rules {
		if v, ok := m.values[r.Name()]; ok {
			parts = append(parts, v.String())
		}
	}
	return strings.Join(parts, c.Separator())
}

// AllMet reports whether m satisfies every rule of c, optional ones
// included.
func (c *Convention) AllMet(m Match) bool {
	for _, r := range c.rules {
		if !m.Met(r.Name()) {
			return false
		}
	}
	return true
}

// Set returns a copy of m with the named rule's value replaced by value.
// The rule must accept value, otherwise a *BadValueError is returned; the
// stored value is what the rule parsed out of it. Composed rules parse value
// with their nested convention.
func (c *Convention) Set(m Match, name, value string) (Match, error) {
	i := c.index(name)
	if i < 0 {
		return m, &UnknownRuleError{Name: name}
	}
	v, ok := c.rules[i].match(value)
	if !ok {
		return m, &BadValueError{Rule: name, Value: value}
	}

	values := make([]*Value, len(c.rules))
	for j, r := range c.rules {
		if old, ok := m.values[r.Name()]; ok {
			values[j] = &old
		}
	}
	values[i] = &v
	return c.build(values), nil
}

// Clear returns a copy of m without the named rule's value. Clearing a
// mandatory rule makes the result not OK.
func (c *Convention) Clear(m Match, name string) (Match, error) {
	i := c.index(name)
	if i < 0 {
		return m, &UnknownRuleError{Name: name}
	}
	values := make([]*Value, len(c.rules))
	for j, r := range c.rules {
		if old, ok := m.values[r.Name()]; ok && j != i {
			values[j] = &old
		}
	}
	return c.build(values), nil
}
