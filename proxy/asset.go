package proxy

import (
	"context"
)

// AssetTranslator fetches arbitrary URLs, typically storage-hosted images, without
// credentials.
type AssetTranslator struct {
	translator
}

func NewAssetTranslator(fetcher Fetcher, opts ...Option) *AssetTranslator {
	return &AssetTranslator{
		translator: newTranslator(proxyStorage, fetcher, opts...),
	}
}

func (t *AssetTranslator) TranslateAsset(ctx context.Context, rawURL string) (*Response, error) {
	if rawURL == "" {
		return nil, t.missing(ParamURL)
	}

	return t.forward(ctx, rawURL, BodyBinary)
}
