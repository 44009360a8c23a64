package max98390

import "github.com/renholt/sidecodec-core/internal/regmap"

// FilterConfigurer programs the amplifier's DSM (dynamic speaker
// management) filter chain after base initialisation. Implementations
// carry speaker-specific tuning; a failure degrades audio quality but
// never fails the probe.
type FilterConfigurer interface {
	Configure(rm *regmap.Regmap) error
}

// noopFilters leaves the part's power-on filter defaults in place. Used
// when no speaker tuning is supplied.
type noopFilters struct{}

func (noopFilters) Configure(*regmap.Regmap) error { return nil }
