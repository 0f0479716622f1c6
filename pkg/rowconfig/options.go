// Package rowconfig provides the options surface the ingestion core
// reads, loaded through viper and scoped to exactly the four options the
// core consumes.
package rowconfig

import (
	"fmt"

	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/spf13/viper"
)

// Options holds the ingestion core's consumed configuration.
type Options struct {
	// AutoUpcastNumbers controls numeric widening in the fast encoders.
	AutoUpcastNumbers bool `yaml:"auto_upcast_numbers" json:"auto_upcast_numbers"`
	// NormalcaseThreshold is ν, the dict column projector's acceptance
	// ratio, in (0,1].
	NormalcaseThreshold float64 `yaml:"normalcase_threshold" json:"normalcase_threshold"`
	// OptionalThreshold is θ, the option-lifting band in the
	// inferencer, in (0.5,1].
	OptionalThreshold float64 `yaml:"optional_threshold" json:"optional_threshold"`
	// RuntimeLibrary is checked by ValidateRuntimeLibrary, which reports
	// an empty or missing path as a startup-fatal error.
	RuntimeLibrary string `yaml:"runtime_library" json:"runtime_library"`
}

// NewOptions returns Options at their documented defaults.
func NewOptions() *Options {
	return &Options{
		AutoUpcastNumbers:   false,
		NormalcaseThreshold: 0.9,
		OptionalThreshold:   0.9,
		RuntimeLibrary:      "",
	}
}

// Load reads Options from v, falling back to NewOptions' defaults for any
// key v doesn't have set.
func Load(v *viper.Viper) *Options {
	o := NewOptions()
	if v.IsSet("auto_upcast_numbers") {
		o.AutoUpcastNumbers = v.GetBool("auto_upcast_numbers")
	}
	if v.IsSet("normalcase_threshold") {
		o.NormalcaseThreshold = v.GetFloat64("normalcase_threshold")
	}
	if v.IsSet("optional_threshold") {
		o.OptionalThreshold = v.GetFloat64("optional_threshold")
	}
	if v.IsSet("runtime_library") {
		o.RuntimeLibrary = v.GetString("runtime_library")
	}
	return o
}

// Validate checks each option's documented bounds.
func (o *Options) Validate() error {
	if o.NormalcaseThreshold <= 0 || o.NormalcaseThreshold > 1 {
		return ingesterrors.New(ingesterrors.ErrorTypeCaller, "normalcase_threshold must be in (0,1]").
			WithDetail("value", o.NormalcaseThreshold)
	}
	if o.OptionalThreshold <= 0.5 || o.OptionalThreshold > 1 {
		return ingesterrors.New(ingesterrors.ErrorTypeCaller, "optional_threshold must be in (0.5,1]").
			WithDetail("value", o.OptionalThreshold)
	}
	return nil
}

// ValidateRuntimeLibrary checks the startup-fatal precondition: a missing
// runtime library path. Returns a plain error rather than an
// ingesterrors.Error because this is raised as a host-runtime exception,
// not converted into an error dataset.
func (o *Options) ValidateRuntimeLibrary(exists func(path string) bool) error {
	if o.RuntimeLibrary == "" {
		return fmt.Errorf("startup fatal: RUNTIME_LIBRARY is not configured")
	}
	if !exists(o.RuntimeLibrary) {
		return fmt.Errorf("startup fatal: RUNTIME_LIBRARY not found at %q", o.RuntimeLibrary)
	}
	return nil
}

// AsMap returns the introspection payload for the options() operation.
func (o *Options) AsMap() map[string]any {
	return map[string]any{
		"AUTO_UPCAST_NUMBERS":  o.AutoUpcastNumbers,
		"NORMALCASE_THRESHOLD": o.NormalcaseThreshold,
		"OPTIONAL_THRESHOLD":   o.OptionalThreshold,
		"RUNTIME_LIBRARY":      o.RuntimeLibrary,
	}
}
