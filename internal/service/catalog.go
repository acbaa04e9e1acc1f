package service

import (
	"github.com/andyle182810/catalogproxy/proxy"
	"github.com/labstack/echo/v4"
)

type CatalogRequest struct {
	Endpoint string `query:"endpoint"`
}

// ProxyCatalog forwards ?endpoint= to the catalog API. Every other query parameter is passed
// through unchanged.
func (s *Service) ProxyCatalog(c echo.Context, req *CatalogRequest) error {
	// ParseTarget fails only on an empty selector. The zero target is still handed to Translate,
	// which rejects it and counts the rejection in the proxy metrics.
	target, _ := proxy.ParseTarget(req.Endpoint)

	resp, err := s.catalog.Translate(c.Request().Context(), target, c.QueryParams())
	if err != nil {
		return &routeError{route: routeCatalog, err: err}
	}

	return writeResponse(c, resp)
}
