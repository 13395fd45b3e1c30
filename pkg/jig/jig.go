// Package jig defines the physical parameters of the manufactured piece:
// the padded blank around the object cavity, material thickness, and how
// deep the cavity goes.
package jig

import "fmt"

// Config holds the physical jig parameters in millimeters.
//
// CavityDepth nil means a through-cut: the cavity penetrates the full
// material thickness. A non-nil depth smaller than the thickness gives a
// blind pocket opening from the top face.
//
// When FixedSize is positive the blank is a square of exactly that side
// and the padding/rounding derivation from the contour bounds is skipped.
type Config struct {
	// Padding is the clearance added on each side of the contour when
	// the blank size is derived from the contour bounds.
	Padding float64

	// Thickness is the material thickness, which is also the extrusion
	// height of a printed jig.
	Thickness float64

	// CavityDepth is how deep the cavity penetrates from the top face;
	// nil means all the way through.
	CavityDepth *float64

	// SizeIncrement quantizes the derived blank size upward; zero
	// disables quantization.
	SizeIncrement float64

	// FixedSize, when positive, overrides the derived blank size with
	// a fixed square side.
	FixedSize float64
}

// Default returns a config for a 3mm laser-cut or printed jig with 10mm
// clearance, a through-cut cavity, and blank sizes in 10mm steps.
func Default() Config {
	return Config{
		Padding:       10,
		Thickness:     3,
		SizeIncrement: 10,
	}
}

// WithPocket returns a copy of the config with a blind pocket of the
// given depth instead of a through-cut.
func (c Config) WithPocket(depth float64) Config {
	c.CavityDepth = &depth
	return c
}

// Depth returns the effective cavity depth: the explicit pocket depth,
// or the full thickness for a through-cut.
func (c Config) Depth() float64 {
	if c.CavityDepth == nil {
		return c.Thickness
	}
	return *c.CavityDepth
}

// IsThroughCut reports whether the cavity penetrates the full thickness.
func (c Config) IsThroughCut() bool {
	return c.CavityDepth == nil || *c.CavityDepth >= c.Thickness
}

// Validate rejects configurations that cannot be manufactured.
func (c Config) Validate() error {
	if c.Thickness <= 0 {
		return fmt.Errorf("jig: thickness %.3f must be positive", c.Thickness)
	}
	if c.Padding < 0 {
		return fmt.Errorf("jig: padding %.3f must not be negative", c.Padding)
	}
	if c.CavityDepth != nil {
		if *c.CavityDepth <= 0 {
			return fmt.Errorf("jig: cavity depth %.3f must be positive", *c.CavityDepth)
		}
		if *c.CavityDepth > c.Thickness {
			return fmt.Errorf("jig: cavity depth %.3f exceeds thickness %.3f",
				*c.CavityDepth, c.Thickness)
		}
	}
	if c.FixedSize < 0 {
		return fmt.Errorf("jig: fixed size %.3f must not be negative", c.FixedSize)
	}
	return nil
}
