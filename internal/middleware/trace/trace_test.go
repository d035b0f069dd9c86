package trace

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "salesdash/internal/log"
)

func TestMiddleware_RequestIDAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{Format: "json", Output: &buf})
	m := NewMiddleware(logger, func(r *http.Request) string { return "198.51.100.1" })

	var seenID string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = applog.RequestID(r.Context())
		switch r.URL.Path {
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		case "/nope":
			w.WriteHeader(http.StatusMethodNotAllowed)
		default:
			_, _ = w.Write([]byte("ok"))
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NotEmpty(t, seenID)
	_, err := uuid.Parse(seenID)
	require.NoError(t, err)
	assert.Equal(t, seenID, rec.Header().Get(HeaderRequestID))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/nope", nil))

	metrics := m.GetMetrics()
	assert.EqualValues(t, 3, metrics.TotalRequests)
	assert.EqualValues(t, 1, metrics.ServerErrors)
	assert.EqualValues(t, 1, metrics.ClientErrors)
	assert.GreaterOrEqual(t, metrics.LastResponseTime, int64(0))

	assert.Contains(t, buf.String(), `"msg":"HTTP request completed"`)
	assert.Contains(t, buf.String(), `"client_ip":"198.51.100.1"`)
	assert.Contains(t, buf.String(), `"request_id":"`+seenID+`"`)
}

func TestMiddleware_HonoursUpstreamRequestID(t *testing.T) {
	m := NewMiddleware(applog.New(applog.Config{Output: &bytes.Buffer{}}), nil)
	upstream := uuid.NewString()

	var seenID string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = applog.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, upstream)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, upstream, seenID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "not-a-uuid", seenID)
}
