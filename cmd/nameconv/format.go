package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/colorium/nameconv/internal/config"
	"github.com/colorium/nameconv/pkg/nameconv"
	"github.com/colorium/nameconv/pkg/nameconv/asset"
)

// Report is the outcome of checking one name.
type Report struct {
	Name      string         `json:"name"`
	Valid     bool           `json:"valid"`
	Canonical string         `json:"canonical,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
	Asset     *asset.Asset   `json:"asset,omitempty"`
	Error     string         `json:"error,omitempty"`
	ErrorKind string         `json:"error_kind,omitempty"`
}

// newReport evaluates name. Fields are kept for rejected names that got as
// far as a partial match. With decode set, accepted names are also decoded
// as assets; a name the asset vocabulary can't decode is still valid.
func newReport(conv *nameconv.Convention, name string, decode bool, logger *slog.Logger) Report {
	r := Report{Name: name}

	m, err := conv.Evaluate(name)
	if len(m.RulesMet()) > 0 {
		r.Fields = m.Fields()
	}
	if err != nil {
		r.Error = err.Error()
		r.ErrorKind = errorKind(err)
		return r
	}

	r.Valid = true
	r.Canonical = conv.Reconstruct(m)
	if decode {
		a, err := asset.FromMatch(m)
		if err != nil {
			logger.Debug("name is not an asset", "name", name, "error", err)
		} else {
			r.Asset = &a
		}
	}
	return r
}

// errorKind returns a stable identifier for an evaluation error.
func errorKind(err error) string {
	switch {
	case errors.Is(err, nameconv.ErrTooManyTokens):
		return "too_many_tokens"
	case errors.Is(err, nameconv.ErrNotEnoughTokens):
		return "not_enough_tokens"
	case errors.Is(err, nameconv.ErrUnmatchedToken):
		return "unmatched_token"
	case errors.Is(err, nameconv.ErrMissingRules):
		return "missing_rules"
	default:
		return "error"
	}
}

// OutputReport writes a report in the specified format to the writer.
func OutputReport(format string, r Report, out io.Writer) error {
	switch format {
	case config.FormatJSONL:
		return OutputJSON(r, out)
	case config.FormatPretty:
		return OutputPretty(r, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes a report as JSON Lines format.
func OutputJSON(r Report, out io.Writer) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes a report in human-readable format.
func OutputPretty(r Report, out io.Writer) error {
	if !r.Valid {
		_, err := fmt.Fprintf(out, "FAIL %s: %s\n", r.Name, r.Error)
		return err
	}

	line := "ok   " + r.Name
	if fields := flattenFields("", r.Fields, nil); len(fields) > 0 {
		line += " " + formatData(fields)
	}
	if r.Asset != nil && r.Asset.HasType {
		line += " (" + r.Asset.Type.Name + ")"
	}
	_, err := fmt.Fprintln(out, line)
	return err
}

// flattenFields turns nested field maps into dotted keys, e.g.
// "scene_shot.scene".
func flattenFields(prefix string, fields map[string]any, out map[string]string) map[string]string {
	if out == nil {
		out = make(map[string]string, len(fields))
	}
	for k, v := range fields {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			flattenFields(key, v, out)
		default:
			out[key] = fmt.Sprint(v)
		}
	}
	return out
}

// formatData formats a map as sorted key=value pairs.
// Values are quoted if they contain spaces, equals signs, quotes, or control characters.
func formatData(data map[string]string) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(data))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", quoteIfNeeded(k), quoteIfNeeded(data[k])))
	}
	return strings.Join(parts, " ")
}

// quoteIfNeeded quotes a value if it contains special characters or control characters.
// Returns the value unchanged if no quoting is needed.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}

	needsQuote := false
	for _, c := range v {
		if c == ' ' || c == '=' || c == '"' || c == '\\' || c < 0x20 || c == 0x7F {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return v
	}

	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range v {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20 || c == 0x7F:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
