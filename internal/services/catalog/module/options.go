package module

import (
	"refstar/internal/platform/config"
	"refstar/internal/services/catalog/repo"
)

// Options holds configuration settings for the catalog module
type Options struct {
	Table string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("CORE_CATALOG_")
	return Options{
		Table: cf.MayString("TABLE", repo.DefaultTable),
	}
}
