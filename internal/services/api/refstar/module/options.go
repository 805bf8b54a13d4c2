package module

import (
	"refstar/internal/core/astrometry"
	"refstar/internal/core/ephem"
	"refstar/internal/core/pointing"
	"refstar/internal/core/selector"
	"refstar/internal/platform/config"
	refsvc "refstar/internal/services/api/refstar/service"
)

// Options holds configuration settings for the refstar module
type Options struct {
	Service      refsvc.Config
	L2DistanceKm float64
}

// FromConfig reads CORE_REFSTAR_* and CORE_EPHEM_* values, it panics on an unusable setting
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_REFSTAR_")
	classes, err := astrometry.ParseClasses(rc.MayCSV("CLASSES", []string{"A", "B", "C"}))
	if err != nil {
		panic("CORE_REFSTAR_CLASSES: " + err.Error())
	}
	o := Options{
		Service: refsvc.Config{
			Samples: rc.MayInt("SAMPLES", pointing.DefaultSamples),
			Band: pointing.SunBand{
				Min: astrometry.Deg(rc.MayFloat64("SUN_MIN_DEG", pointing.DefaultSunMin)),
				Max: astrometry.Deg(rc.MayFloat64("SUN_MAX_DEG", pointing.DefaultSunMax)),
			},
			Tolerance: rc.MayFloat64("PITCH_TOLERANCE_DEG", selector.DefaultTolerance),
			Classes:   classes,

			ExcludeTarget: rc.MayBool("EXCLUDE_TARGET", false),
		},
		L2DistanceKm: cfg.Prefix("CORE_EPHEM_").MayFloat64("L2_DISTANCE_KM", ephem.DefaultL2DistanceKm),
	}
	if err := o.Service.Validate(); err != nil {
		panic("CORE_REFSTAR_: " + err.Error())
	}
	return o
}
