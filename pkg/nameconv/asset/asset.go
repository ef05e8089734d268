package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/colorium/nameconv/pkg/nameconv"
)

// Kind tells which stage of the pipeline a file name belongs to.
type Kind int

const (
	// KindSave is a versioned work file, e.g. "..._v003".
	KindSave Kind = iota
	// KindPublish is a published asset, "..._publish".
	KindPublish
	// KindExport is an exported asset, "..._export".
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindSave:
		return "save"
	case KindPublish:
		return "publish"
	case KindExport:
		return "export"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ErrIncompleteMatch is returned by FromMatch for a match that did not
// satisfy every mandatory rule.
var ErrIncompleteMatch = errors.New("match is incomplete")

// Asset is the typed form of a name matched by the default convention.
// Version is only meaningful when Kind is KindSave.
type Asset struct {
	Type       Type   `json:"type"`
	HasType    bool   `json:"has_type"` // false when the type code is not in the table
	Name       string `json:"name"`
	Variant    string `json:"variant,omitempty"`
	HasVariant bool   `json:"has_variant"`
	Scene      int    `json:"scene,omitempty"`
	HasScene   bool   `json:"has_scene"`
	Shot       int    `json:"shot,omitempty"`
	HasShot    bool   `json:"has_shot"`
	Version    int    `json:"version,omitempty"`
	Kind       Kind   `json:"kind"`
}

// FromMatch decodes a match of DefaultConvention, or of any convention
// using the same rule names and value shapes.
func FromMatch(m nameconv.Match) (Asset, error) {
	if !m.OK() {
		return Asset{}, ErrIncompleteMatch
	}

	var a Asset
	a.Type, a.HasType = LookupCode(m.String(RuleType))
	a.Name = m.String(RuleName)

	if m.Met(RuleVariant) {
		a.Variant = m.String(RuleVariant)
		a.HasVariant = true
	}

	if sceneShot, ok := m.Nested(RuleSceneShot); ok {
		scene, err := parseNumber(RuleScene, sceneShot.String(RuleScene))
		if err != nil {
			return Asset{}, err
		}
		a.Scene, a.HasScene = scene, true

		if sceneShot.Met(RuleShot) {
			shot, err := parseNumber(RuleShot, sceneShot.String(RuleShot))
			if err != nil {
				return Asset{}, err
			}
			a.Shot, a.HasShot = shot, true
		}
	}

	if err := a.decodeVersion(m.String(RuleVersion)); err != nil {
		return Asset{}, err
	}
	return a, nil
}

func (a *Asset) decodeVersion(token string) error {
	switch token {
	case PublishToken:
		a.Kind = KindPublish
		return nil
	case ExportToken:
		a.Kind = KindExport
		return nil
	}

	n, err := parseNumber(RuleVersion, strings.TrimPrefix(token, "v"))
	if err != nil {
		return err
	}
	a.Kind = KindSave
	a.Version = n
	return nil
}

func parseNumber(field, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number: %w", field, s, err)
	}
	return n, nil
}

var defaultConvention = sync.OnceValue(func() *nameconv.Convention {
	return DefaultConvention()
})

// Parse evaluates name with the default convention and decodes the match.
func Parse(name string) (Asset, error) {
	m, err := defaultConvention().Evaluate(name)
	if err != nil {
		return Asset{}, err
	}
	return FromMatch(m)
}
