package httpclient

import (
	"net/http"
	"time"
)

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

func (r *Response) ContentType() string {
	return r.Header.Get(HeaderContentType)
}
