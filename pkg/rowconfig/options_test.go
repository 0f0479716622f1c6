package rowconfig_test

import (
	"testing"

	"github.com/lakeforge/rowcore/pkg/rowconfig"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	o := rowconfig.Load(viper.New())
	assert.False(t, o.AutoUpcastNumbers)
	assert.Equal(t, 0.9, o.NormalcaseThreshold)
	assert.Equal(t, 0.9, o.OptionalThreshold)
	require.NoError(t, o.Validate())
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("auto_upcast_numbers", true)
	v.Set("optional_threshold", 0.75)

	o := rowconfig.Load(v)
	assert.True(t, o.AutoUpcastNumbers)
	assert.Equal(t, 0.75, o.OptionalThreshold)
	assert.Equal(t, 0.9, o.NormalcaseThreshold, "unset keys keep their defaults")
}

func TestValidateBounds(t *testing.T) {
	o := rowconfig.NewOptions()
	o.OptionalThreshold = 0.5 // must be strictly above 0.5
	require.Error(t, o.Validate())

	o = rowconfig.NewOptions()
	o.NormalcaseThreshold = 1.5
	require.Error(t, o.Validate())

	o = rowconfig.NewOptions()
	o.NormalcaseThreshold = 1.0
	o.OptionalThreshold = 1.0
	require.NoError(t, o.Validate())
}

// TestValidateRuntimeLibrary: a missing runtime library is fatal at
// startup and surfaces as a plain error, not an error dataset.
func TestValidateRuntimeLibrary(t *testing.T) {
	o := rowconfig.NewOptions()
	require.Error(t, o.ValidateRuntimeLibrary(func(string) bool { return true }), "empty path")

	o.RuntimeLibrary = "/nonexistent/librt.so"
	require.Error(t, o.ValidateRuntimeLibrary(func(string) bool { return false }))
	require.NoError(t, o.ValidateRuntimeLibrary(func(string) bool { return true }))
}

func TestAsMapRoundTrip(t *testing.T) {
	o := rowconfig.NewOptions()
	m := o.AsMap()
	assert.Equal(t, o.AutoUpcastNumbers, m["AUTO_UPCAST_NUMBERS"])
	assert.Equal(t, o.NormalcaseThreshold, m["NORMALCASE_THRESHOLD"])
	assert.Equal(t, o.OptionalThreshold, m["OPTIONAL_THRESHOLD"])
	assert.Equal(t, o.RuntimeLibrary, m["RUNTIME_LIBRARY"])
}
