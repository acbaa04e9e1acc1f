package service

import (
	"context"
	"net/url"

	"github.com/andyle182810/catalogproxy/proxy"
)

type CatalogProxy interface {
	Translate(ctx context.Context, target proxy.Target, query url.Values) (*proxy.Response, error)
}

type AssetProxy interface {
	TranslateAsset(ctx context.Context, rawURL string) (*proxy.Response, error)
}

type Service struct {
	catalog CatalogProxy
	assets  AssetProxy
}

func New(catalog CatalogProxy, assets AssetProxy) *Service {
	return &Service{
		catalog: catalog,
		assets:  assets,
	}
}
