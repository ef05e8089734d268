package convfile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/colorium/nameconv/pkg/nameconv"
)

// Build validates f, compiles its regular expressions and returns the
// convention it declares. Options such as nameconv.WithLogger apply to the
// nested conventions too; separators always come from the file.
//
// Example:
//
//	f, err := convfile.Load("convention.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := convfile.Build(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Build(f *File, opts ...nameconv.Option) (*nameconv.Convention, error) {
	if f == nil {
		return nil, errors.New("convention file is nil")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return buildConvention(f.Rules, "", separatorOr(f.Separator, nameconv.DefaultSeparator), opts)
}

// BuildFromFile loads the file at path and builds its convention.
func BuildFromFile(path string, opts ...nameconv.Option) (*nameconv.Convention, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(f, opts...)
}

func separatorOr(sep, def string) string {
	if sep == "" {
		return def
	}
	return sep
}

func buildConvention(defs []RuleDef, parent, sep string, opts []nameconv.Option) (*nameconv.Convention, error) {
	levelOpts := make([]nameconv.Option, 0, len(opts)+1)
	levelOpts = append(levelOpts, opts...)
	levelOpts = append(levelOpts, nameconv.WithSeparator(sep))
	conv := nameconv.New(levelOpts...)

	for i, d := range defs {
		path := rulePath(parent, d.Name, i)
		r, err := buildRule(d, path, i, opts)
		if err != nil {
			return nil, err
		}
		if err := conv.Add(r); err != nil {
			return nil, &RuleError{Path: path, Index: i, Field: "name", Message: err.Error(), Cause: err}
		}
	}
	return conv, nil
}

func buildRule(d RuleDef, path string, index int, opts []nameconv.Option) (nameconv.Rule, error) {
	switch d.Kind() {
	case nameconv.KindComposed:
		nested, err := buildConvention(d.Rules, path, separatorOr(d.Separator, nameconv.DefaultNestedSeparator), opts)
		if err != nil {
			return nil, err
		}
		r, err := nameconv.NewComposed(d.Name, nested, d.presence())
		if err != nil {
			return nil, &RuleError{Path: path, Index: index, Field: "rules", Message: err.Error(), Cause: err}
		}
		return r, nil

	case nameconv.KindAlternative:
		r, err := nameconv.NewAlternative(d.Name, d.Patterns, d.presence())
		if err != nil {
			return nil, &RuleError{
				Path:    path,
				Index:   index,
				Field:   "patterns",
				Message: fmt.Sprintf("invalid regular expression: %v", causeOf(err)),
				Cause:   err,
			}
		}
		return r, nil

	default:
		r, err := nameconv.NewPattern(d.Name, d.Pattern, d.presence())
		if err != nil {
			return nil, &RuleError{
				Path:    path,
				Index:   index,
				Field:   "pattern",
				Message: fmt.Sprintf("invalid regular expression: %v", causeOf(err)),
				Cause:   err,
			}
		}
		return r, nil
	}
}

// causeOf strips the rule-name prefix the nameconv constructors add.
func causeOf(err error) error {
	if inner := errors.Unwrap(err); inner != nil {
		return inner
	}
	return err
}

// FromConvention describes c as a File, the inverse of Build.
func FromConvention(c *nameconv.Convention) *File {
	return &File{
		Version:   SupportedVersion,
		Separator: c.Separator(),
		Rules:     describeRules(c),
	}
}

func describeRules(c *nameconv.Convention) []RuleDef {
	rules := c.Rules()
	defs := make([]RuleDef, 0, len(rules))
	for _, r := range rules {
		d := RuleDef{Name: r.Name(), Optional: nameconv.IsOptional(r)}
		switch r := r.(type) {
		case *nameconv.PatternRule:
			d.Pattern = r.Expr()
		case *nameconv.AlternativeRule:
			d.Patterns = r.Exprs()
		case *nameconv.ComposedRule:
			d.Separator = r.Convention().Separator()
			d.Rules = describeRules(r.Convention())
		}
		defs = append(defs, d)
	}
	return defs
}

// Marshal encodes f as YAML.
func Marshal(f *File) ([]byte, error) {
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return data, nil
}
