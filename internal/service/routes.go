package service

import (
	"net/http"

	"github.com/andyle182810/catalogproxy/httpserver"
	"github.com/andyle182810/catalogproxy/middleware"
	"github.com/labstack/echo/v4"
)

const (
	DefaultCatalogPath = "/catalog"
	DefaultStoragePath = "/storage"
	HealthPath         = "/health"

	routeCatalog = "catalog"
	routeStorage = "storage"
)

type Routes struct {
	CatalogPath string
	StoragePath string
}

func DefaultRoutes() Routes {
	return Routes{
		CatalogPath: DefaultCatalogPath,
		StoragePath: DefaultStoragePath,
	}
}

// RegisterRoutes mounts the health check and both proxies. The catalog route advertises
// GET, POST and OPTIONS; the storage route only sets the allowed origin.
func (s *Service) RegisterRoutes(root *echo.Group, routes Routes) {
	root.GET(HealthPath, httpserver.Wrapper(s.CheckHealth), middleware.Handler("health"))

	root.Match(
		[]string{http.MethodGet, http.MethodPost, http.MethodOptions},
		routes.CatalogPath,
		httpserver.Wrapper(s.ProxyCatalog),
		middleware.Handler(routeCatalog),
		middleware.CORSHeaders(middleware.PermissiveCORSConfig()),
	)

	root.Match(
		[]string{http.MethodGet, http.MethodOptions},
		routes.StoragePath,
		httpserver.Wrapper(s.ProxyStorage),
		middleware.Handler(routeStorage),
		middleware.CORSHeaders(middleware.CORSConfig{AllowOrigin: "*"}), //nolint:exhaustruct
	)
}
