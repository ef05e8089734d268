package nameconv

import (
	"encoding/json"
	"strings"
)

// Value is the parsed value of a satisfied rule: plain text for pattern and
// alternative rules, a nested Match for composed rules.
type Value struct {
	text   string
	nested *Match
}

// TextValue returns a plain text Value.
func TextValue(s string) Value { return Value{text: s} }

// NestedValue returns a Value holding the result of a nested evaluation.
func NestedValue(m Match) Value { return Value{nested: &m} }

// IsNested reports whether v came from a composed rule.
func (v Value) IsNested() bool { return v.nested != nil }

// Nested returns the nested Match and true if v came from a composed rule.
func (v Value) Nested() (Match, bool) {
	if v.nested == nil {
		return Match{}, false
	}
	return *v.nested, true
}

// String returns the formatted value: the text itself, or the nested
// reconstruction for composed rules.
func (v Value) String() string {
	if v.nested != nil {
		return v.nested.Reconstructed()
	}
	return v.text
}

// Interface returns v as a string or, for composed rules, as a
// map[string]any of the nested fields.
func (v Value) Interface() any {
	if v.nested != nil {
		return v.nested.Fields()
	}
	return v.text
}

// MarshalJSON encodes text values as JSON strings and nested values as
// objects.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Match is the result of evaluating one name against a Convention.
//
// A Match is immutable and safe to share. The zero Match has no satisfied
// rules and is not OK.
type Match struct {
	ok        bool
	separator string
	met       []string // satisfied rule names, declaration order
	values    map[string]Value
}

// OK reports whether every mandatory rule was satisfied.
func (m Match) OK() bool { return m.ok }

// Separator returns the separator of the convention that produced m.
func (m Match) Separator() string { return m.separator }

// Met reports whether the named rule was satisfied.
func (m Match) Met(name string) bool {
	_, ok := m.values[name]
	return ok
}

// RulesMet returns the names of the satisfied rules in declaration order.
func (m Match) RulesMet() []string {
	out := make([]string, len(m.met))
	copy(out, m.met)
	return out
}

// Value returns the parsed value of the named rule.
func (m Match) Value(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// String returns the formatted value of the named rule, or "" when the rule
// was not satisfied.
func (m Match) String(name string) string {
	return m.values[name].String()
}

// Nested returns the nested Match of a satisfied composed rule.
func (m Match) Nested(name string) (Match, bool) {
	v, ok := m.values[name]
	if !ok {
		return Match{}, false
	}
	return v.Nested()
}

// Fields projects m onto a map of rule name to parsed value. Composed rules
// map to a nested map[string]any. Unsatisfied rules are absent.
func (m Match) Fields() map[string]any {
	out := make(map[string]any, len(m.values))
	for name, v := range m.values {
		out[name] = v.Interface()
	}
	return out
}

// Reconstructed returns the canonical name: the formatted values of the
// satisfied rules in declaration order, joined by the separator.
func (m Match) Reconstructed() string {
	parts := make([]string, 0, len(m.met))
	for _, name := range m.met {
		parts = append(parts, m.values[name].String())
	}
	return strings.Join(parts, m.separator)
}

// MarshalJSON encodes m as its Fields map.
func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Fields())
}
