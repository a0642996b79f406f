// Package providers contains the dependency injection providers for
// the Rolodex server.
package providers

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/rolodexapp/rolodex-server/internal/config"
	"github.com/rolodexapp/rolodex-server/internal/fragcache"
	"github.com/rolodexapp/rolodex-server/internal/logger"
	"github.com/rolodexapp/rolodex-server/internal/render"
	"github.com/rolodexapp/rolodex-server/internal/validation"
)

// ProvideConfig loads the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	return config.Load()
}

// ProvideLogger provides the application logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logger.New(logger.Config{
		Writer:      os.Stdout,
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	}), nil
}

// ProvideValidator provides the form validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideFragmentCache provides the shared fragment cache.
func ProvideFragmentCache(i do.Injector) (*fragcache.Cache, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return fragcache.New(log.Logger), nil
}

// ProvideRenderer provides the HTML fragment renderer.
func ProvideRenderer(_ do.Injector) (render.Renderer, error) {
	return render.NewHTML()
}
