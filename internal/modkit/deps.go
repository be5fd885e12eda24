// Package modkit provides module wiring and core deps
package modkit

import (
	"paydash/internal/core/category"
	"paydash/internal/platform/config"
	"paydash/internal/platform/logger"
	"paydash/internal/platform/store"
)

// Deps holds what the process shares with every module
// the zero value is usable: a nil Store serves no source and a nil Holder an empty index
type Deps struct {
	Log        logger.Logger
	Cfg        config.Conf
	Store      *store.Store
	Categories *category.Holder
}
