package proxy

import (
	"strings"
)

type TargetKind int

const (
	KindNone TargetKind = iota
	KindRelativeEndpoint
	KindAbsoluteURL
)

func (k TargetKind) String() string {
	switch k {
	case KindRelativeEndpoint:
		return "relative_endpoint"
	case KindAbsoluteURL:
		return "absolute_url"
	default:
		return "none"
	}
}

type BodyKind int

const (
	BodyJSON BodyKind = iota
	BodyBinary
)

func (k BodyKind) String() string {
	if k == BodyBinary {
		return "binary"
	}

	return "json"
}

// Target is either a catalog endpoint relative to the API base or an absolute URL.
// The zero value is not a valid target.
type Target struct {
	kind  TargetKind
	value string
}

func RelativeEndpoint(endpoint string) Target {
	return Target{kind: KindRelativeEndpoint, value: endpoint}
}

func AbsoluteURL(rawURL string) Target {
	return Target{kind: KindAbsoluteURL, value: rawURL}
}

// ParseTarget classifies a raw endpoint selector. Values starting with "http" are absolute.
func ParseTarget(raw string) (Target, error) {
	if raw == "" {
		return Target{}, MissingParameter(ParamEndpoint)
	}

	if strings.HasPrefix(raw, "http") {
		return AbsoluteURL(raw), nil
	}

	return RelativeEndpoint(raw), nil
}

func (t Target) Kind() TargetKind {
	return t.kind
}

func (t Target) Value() string {
	return t.value
}

func (t Target) IsZero() bool {
	return t.kind == KindNone || t.value == ""
}

func (t Target) BodyKind() BodyKind {
	if t.kind == KindAbsoluteURL {
		return BodyBinary
	}

	return BodyJSON
}

// Resolve returns the outbound URL. Relative endpoints are appended to baseURL as
// "<baseURL>/<endpoint>".
func (t Target) Resolve(baseURL string) string {
	if t.kind == KindAbsoluteURL {
		return t.value
	}

	return baseURL + "/" + t.value
}
