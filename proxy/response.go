package proxy

// Response is the mapped upstream answer. For BodyJSON, Body holds the compacted JSON payload
// and ContentType is empty.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Kind        BodyKind
}

func (r *Response) IsBinary() bool {
	return r.Kind == BodyBinary
}
