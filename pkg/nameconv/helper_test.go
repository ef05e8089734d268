package nameconv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colorium/nameconv/pkg/nameconv"
)

// newSceneShot returns the nested "scene-shot" convention.
func newSceneShot(t testing.TB) *nameconv.Convention {
	t.Helper()
	c, err := nameconv.NewWithRules([]nameconv.Rule{
		nameconv.MustPattern("scene", `^[0-9]{3}$`, nameconv.Mandatory),
		nameconv.MustPattern("shot", `^[0-9]{3}$`, nameconv.Optional),
	}, nameconv.WithSeparator("-"))
	require.NoError(t, err)
	return c
}

// newAssetConvention returns the five-rule convention used throughout the
// tests: type, name, variant?, scene_shot?, version.
func newAssetConvention(t testing.TB, opts ...nameconv.Option) *nameconv.Convention {
	t.Helper()
	c, err := nameconv.NewWithRules([]nameconv.Rule{
		nameconv.MustPattern("type", `^[a-z]{3}$`, nameconv.Mandatory),
		nameconv.MustPattern("name", `^[a-zA-Z]+$`, nameconv.Mandatory),
		nameconv.MustPattern("variant", `^[0-9]{2}$`, nameconv.Optional),
		nameconv.MustComposed("scene_shot", newSceneShot(t), nameconv.Optional),
		nameconv.MustPattern("version", `^v[0-9]{3}$`, nameconv.Mandatory),
	}, opts...)
	require.NoError(t, err)
	return c
}
