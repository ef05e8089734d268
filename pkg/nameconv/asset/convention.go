package asset

import (
	"slices"

	"github.com/colorium/nameconv/pkg/nameconv"
)

// Rule names of the default convention.
const (
	RuleType      = "type"
	RuleName      = "name"
	RuleVariant   = "variant"
	RuleSceneShot = "scene_shot"
	RuleScene     = "scene"
	RuleShot      = "shot"
	RuleVersion   = "version"
)

// Version tokens for published and exported assets.
const (
	PublishToken = "publish"
	ExportToken  = "export"
)

// DefaultConvention returns the Colorium asset naming convention:
//
//	type_name[_variant][_scene[-shot]]_version
//
// e.g. "mdl_policeCar_10_010-005_v001" or "anm_hero_crashed_publish".
// Each call returns a new Convention; opts apply to the nested scene-shot
// convention as well, except for the separator.
func DefaultConvention(opts ...nameconv.Option) *nameconv.Convention {
	sceneShot := nameconv.New(withSeparator(opts, nameconv.DefaultNestedSeparator)...)
	mustAdd(sceneShot,
		nameconv.MustPattern(RuleScene, `^\d{3}$`, nameconv.Mandatory),
		nameconv.MustPattern(RuleShot, `^\d{3}$`, nameconv.Optional),
	)

	conv := nameconv.New(withSeparator(opts, nameconv.DefaultSeparator)...)
	mustAdd(conv,
		nameconv.MustPattern(RuleType, `^[a-z]{3}$`, nameconv.Mandatory),
		nameconv.MustPattern(RuleName, `^[a-zA-Z]+$`, nameconv.Mandatory),
		nameconv.MustAlternative(RuleVariant, []string{`^\d{2}$`, `^[a-zA-Z]+$`}, nameconv.Optional),
		nameconv.MustComposed(RuleSceneShot, sceneShot, nameconv.Optional),
		nameconv.MustAlternative(RuleVersion, []string{`^v\d{3}$`, `^` + PublishToken + `$`, `^` + ExportToken + `$`}, nameconv.Mandatory),
	)
	return conv
}

func mustAdd(c *nameconv.Convention, rules ...nameconv.Rule) {
	if err := c.Add(rules...); err != nil {
		panic(err)
	}
}

func withSeparator(opts []nameconv.Option, sep string) []nameconv.Option {
	return slices.Concat(opts, []nameconv.Option{nameconv.WithSeparator(sep)})
}
