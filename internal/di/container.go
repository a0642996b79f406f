// Package di provides dependency injection configuration for the
// Rolodex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/rolodexapp/rolodex-server/internal/config"
	"github.com/rolodexapp/rolodex-server/internal/di/providers"
	"github.com/rolodexapp/rolodex-server/internal/fragcache"
	"github.com/rolodexapp/rolodex-server/internal/logger"
	"github.com/rolodexapp/rolodex-server/internal/render"
	"github.com/rolodexapp/rolodex-server/internal/service"
	"github.com/rolodexapp/rolodex-server/internal/validation"
)

// NewContainer creates and configures the DI container with all
// providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideFragmentCache)
	do.Provide(injector, providers.ProvideRenderer)

	// Persistence
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideContactService)
	do.Provide(injector, providers.ProvideCompanyService)
	do.Provide(injector, providers.ProvideActivityService)
	do.Provide(injector, providers.ProvideTagService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap triggers lazy initialization of every service, ending with
// the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*fragcache.Cache](injector)
	_ = do.MustInvoke[render.Renderer](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.ContactService](injector)
	_ = do.MustInvoke[*service.CompanyService](injector)
	_ = do.MustInvoke[*service.ActivityService](injector)
	_ = do.MustInvoke[*service.TagService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	return nil
}
