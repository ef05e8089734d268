package nameconv

// Session remembers the last evaluation made against a Convention so that
// callers such as form binders can query which rules were met after the
// fact. Reset clears the remembered state.
//
// A Session is not safe for concurrent use; create one per goroutine. The
// Convention it wraps may be shared.
type Session struct {
	conv *Convention
	last Match
	err  error
	done bool
}

// NewSession returns a Session over c.
func (c *Convention) NewSession() *Session {
	return &Session{conv: c}
}

// Convention returns the wrapped convention.
func (s *Session) Convention() *Convention { return s.conv }

// Evaluate evaluates name, replacing any previous result, and reports
// whether every mandatory rule was met. The error is the one returned by
// Convention.Evaluate.
func (s *Session) Evaluate(name string) (bool, error) {
	s.last, s.err = s.conv.Evaluate(name)
	s.done = true
	return s.err == nil, s.err
}

// Evaluated reports whether Evaluate was called since the last Reset.
func (s *Session) Evaluated() bool { return s.done }

// Result returns the last Match and error.
func (s *Session) Result() (Match, error) { return s.last, s.err }

// Met reports whether the named rule was met by the last evaluation.
func (s *Session) Met(name string) bool { return s.last.Met(name) }

// RulesMet returns the rules met by the last evaluation, in declaration
// order.
func (s *Session) RulesMet() []Rule {
	var out []Rule
	for _, r := range s.conv.rules {
		if s.last.Met(r.Name()) {
			out = append(out, r)
		}
	}
	return out
}

// RulesNotMet returns the rules not met by the last evaluation, in
// declaration order. Before any evaluation every rule is not met.
func (s *Session) RulesNotMet() []Rule {
	var out []Rule
	for _, r := range s.conv.rules {
		if !s.last.Met(r.Name()) {
			out = append(out, r)
		}
	}
	return out
}

// AllMandatoryMet reports whether the last evaluation met every mandatory
// rule.
func (s *Session) AllMandatoryMet() bool {
	for _, r := range s.conv.rules {
		if r.Presence() == Mandatory && !s.last.Met(r.Name()) {
			return false
		}
	}
	return true
}

// AllMet reports whether the last evaluation met every rule.
func (s *Session) AllMet() bool { return s.conv.AllMet(s.last) }

// ReconstructedName returns the canonical name of the last evaluation.
func (s *Session) ReconstructedName() string { return s.conv.Reconstruct(s.last) }

// Reset forgets the last evaluation.
func (s *Session) Reset() {
	s.last = Match{}
	s.err = nil
	s.done = false
}
