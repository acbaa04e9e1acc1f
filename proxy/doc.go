// Package proxy translates inbound proxy requests into outbound upstream calls and maps the
// upstream answer back into a Response.
//
// Two translators exist. CatalogTranslator forwards to the catalog API with credential headers
// and decodes JSON for relative endpoints. AssetTranslator fetches an arbitrary URL without
// credentials and relays the raw bytes. Every upstream failure is reported as an
// *UpstreamError; callers map it to a single generic failure response.
package proxy
