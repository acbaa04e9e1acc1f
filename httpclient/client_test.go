package httpclient_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andyle182810/catalogproxy/httpclient"
	"github.com/andyle182810/catalogproxy/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTransport struct {
	calls atomic.Int32
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls.Add(1)

	return c.next.RoundTrip(req)
}

func TestWithTimeout_IgnoresNonPositiveValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(20 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithTimeout(0))

	resp, err := client.Get(t.Context(), server.URL)

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_GetReturnsStatusHeadersAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "image/jpeg")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer server.Close()

	client := httpclient.New()

	resp, err := client.Get(t.Context(), server.URL+"/image.jpg")

	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, "image/jpeg", resp.ContentType())
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, resp.Body)
}

func TestClient_GetSendsRequestHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "catalog/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Discogs key=k, secret=s", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New()

	_, err := client.Get(t.Context(), server.URL,
		httpclient.WithRequestHeaders(map[string]string{
			httpclient.HeaderUserAgent:     "catalog/1.0",
			httpclient.HeaderContentType:   httpclient.ContentTypeJSON,
			httpclient.HeaderAuthorization: "Discogs key=k, secret=s",
		}))

	require.NoError(t, err)
}

func TestClient_GetMergesRepeatedHeaderOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "override", r.Header.Get("X-Client"))
		assert.Equal(t, "kept", r.Header.Get("X-Trace"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New()

	_, err := client.Get(t.Context(), server.URL,
		httpclient.WithRequestHeaders(map[string]string{"X-Client": "default", "X-Trace": "kept"}),
		httpclient.WithRequestHeaders(map[string]string{"X-Client": "override"}))

	require.NoError(t, err)
}

func TestClient_GetEncodesQueryValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/database/search", r.URL.Path)
		assert.Equal(t, "nirvana", r.URL.Query().Get("q"))
		assert.Equal(t, []string{"release", "master"}, r.URL.Query()["type"])
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New()

	_, err := client.Get(t.Context(), server.URL+"/database/search",
		httpclient.WithQueryValues(url.Values{"q": {"nirvana"}, "type": {"release", "master"}}),
		httpclient.WithQueryValues(url.Values{"page": {"2"}}),
	)

	require.NoError(t, err)
}

func TestClient_GetReturnsServiceErrorForNon2xx(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Release not found."}`))
	}))
	defer server.Close()

	client := httpclient.New()

	resp, err := client.Get(t.Context(), server.URL+"/releases/0")

	require.Nil(t, resp)
	require.ErrorIs(t, err, httpclient.ErrServiceError)

	svcErr, ok := httpclient.IsServiceError(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	require.JSONEq(t, `{"message":"Release not found."}`, string(svcErr.Body))
	require.Contains(t, svcErr.Error(), "404")
}

func TestClient_GetReturnsRequestFailedOnNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	address := server.URL
	server.Close()

	client := httpclient.New()

	_, err := client.Get(t.Context(), address)

	require.ErrorIs(t, err, httpclient.ErrRequestFailed)

	_, isServiceErr := httpclient.IsServiceError(err)
	require.False(t, isServiceErr)
}

func TestClient_GetHonorsClientTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithTimeout(20 * time.Millisecond))

	_, err := client.Get(t.Context(), server.URL)

	require.ErrorIs(t, err, httpclient.ErrRequestFailed)
}

func TestClient_GetHonorsContextDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, _ := testutil.ContextWithCustomTimeout(t, 20*time.Millisecond)
	client := httpclient.New()

	_, err := client.Get(ctx, server.URL)

	require.ErrorIs(t, err, httpclient.ErrRequestFailed)
	require.Error(t, ctx.Err())
}

func TestClient_GetEnforcesMaxResponseSize(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(bytes.Repeat([]byte("a"), 1024))
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithMaxResponseSize(100))

	_, err := client.Get(t.Context(), server.URL)

	require.ErrorIs(t, err, httpclient.ErrResponseTooLarge)
}

func TestClient_GetUsesCustomTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := &countingTransport{next: http.DefaultTransport}
	client := httpclient.New(httpclient.WithTransport(transport))

	_, err := client.Get(t.Context(), server.URL)

	require.NoError(t, err)
	require.Equal(t, int32(1), transport.calls.Load())
}

func TestWithLogger_RoutesRestyMessagesToZerolog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := httpclient.NewRestyLoggerForTest(zerolog.New(&buf))

	logger.Warnf("redirect to %s\n", "https://example.com")
	logger.Errorf("failed after %d attempts", 1)

	output := buf.String()
	require.Contains(t, output, `"level":"warn"`)
	require.Contains(t, output, "redirect to https://example.com")
	require.Contains(t, output, `"level":"error"`)
	require.Contains(t, output, `"component":"resty"`)
}

func TestWithLogger_KeepsClientUsable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := httpclient.New(httpclient.WithLogger(zerolog.Nop()))

	resp, err := client.Get(t.Context(), server.URL)

	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, resp.Body)
}
