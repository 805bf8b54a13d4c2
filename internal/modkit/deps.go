package modkit

import (
	"refstar/internal/modkit/repokit"
	"refstar/internal/platform/config"
	"refstar/internal/platform/logger"
	"refstar/internal/platform/metrics"
)

// Deps is what every module constructor receives, nil stores mean the backend is not configured
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	Lite repokit.TxRunner

	// Metrics is optional, a nil collector records nothing
	Metrics *metrics.Collector
}

// Catalog returns the seam catalog reads should use, postgres first
func (d Deps) Catalog() repokit.TxRunner {
	if d.PG != nil {
		return d.PG
	}
	return d.Lite
}
