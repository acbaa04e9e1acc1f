package service

import (
	"github.com/labstack/echo/v4"
)

type StorageRequest struct {
	URL string `query:"url"`
}

// ProxyStorage relays the bytes found at ?url=, without credentials.
func (s *Service) ProxyStorage(c echo.Context, req *StorageRequest) error {
	resp, err := s.assets.TranslateAsset(c.Request().Context(), req.URL)
	if err != nil {
		return &routeError{route: routeStorage, err: err}
	}

	return writeResponse(c, resp)
}
