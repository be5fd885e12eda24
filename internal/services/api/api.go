// Package api provides the HTTP API for the application
package api

import (
	"paydash/internal/core/category"
	"paydash/internal/platform/config"
	"paydash/internal/platform/logger"
	phttp "paydash/internal/platform/net/http"
	"paydash/internal/platform/store"

	"paydash/internal/modkit"
	"paydash/internal/modkit/httpkit"
	"paydash/internal/modkit/module"
	"paydash/internal/modkit/swaggerkit"

	catmod "paydash/internal/services/api/categories/module"
	metamod "paydash/internal/services/api/meta/module"
	reportsmod "paydash/internal/services/api/reports/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Categories     *category.Holder
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Modules builds every API module from deps
// a dataset whose pool is not configured is left out with a warning
func Modules(deps modkit.Deps, log *logger.Logger) []modkit.Module {
	cats := catmod.New(deps)
	catPorts := module.MustPortsOf[catmod.Ports](cats)

	mods := []modkit.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Categories: catPorts.Categories})),
		cats,
	}
	for _, ds := range []reportsmod.Dataset{reportsmod.Payroll, reportsmod.Funds} {
		if !reportsmod.Available(deps, ds) {
			log.Warn().Str("dataset", ds.Schema.Name).Msg("no pool configured; dataset routes not mounted")
			continue
		}
		mods = append(mods, reportsmod.New(deps, ds))
	}
	return mods
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:        *log,
		Cfg:        opt.Config,
		Store:      opt.Store,
		Categories: opt.Categories,
	}

	swaggerkit.Register(swaggerkit.Paging)
	mods := Modules(deps, log)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config)), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
