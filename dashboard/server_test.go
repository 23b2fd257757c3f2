package dashboard

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aouyang1/go-multitool"
	"github.com/aouyang1/go-multitool/regression"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(newTestToolkit(t), nil, nil)
	require.NoError(t, err)
	return s
}

func TestNewServerNoToolkit(t *testing.T) {
	_, err := New(nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoToolkit)
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)

	testData := map[string]struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		"index":          {path: "/", status: http.StatusOK, contentType: "text/html", contains: "Multi Tool App"},
		"health":         {path: "/healthz", status: http.StatusOK, contentType: "text/plain", contains: "ok"},
		"page":           {path: "/marks?hours=5", status: http.StatusOK, contentType: "text/html", contains: "Predicted Marks: 47.4"},
		"page by title":  {path: "/Marks%20Predictor", status: http.StatusOK, contentType: "text/html", contains: "Predicted Marks"},
		"page invalid":   {path: "/pg-rent?persons=4", status: http.StatusBadRequest, contentType: "text/html", contains: "persons must be between 1 and 3"},
		"page unknown":   {path: "/weather", status: http.StatusNotFound, contains: "404"},
		"api":            {path: "/api/electricity", status: http.StatusOK, contentType: "application/json", contains: `"total_cost":7060`},
		"api invalid":    {path: "/api/marks?hours=abc", status: http.StatusBadRequest, contentType: "application/json", contains: `"error"`},
		"api unknown":    {path: "/api/weather", status: http.StatusNotFound, contentType: "application/json", contains: "unknown mode"},
		"model":          {path: "/api/pg-rent/model", status: http.StatusOK, contentType: "application/json", contains: `"target":"Price"`},
		"model no model": {path: "/api/careers/model", status: http.StatusNotFound, contentType: "application/json", contains: "no regression model"},
		"metrics":        {path: "/metrics", status: http.StatusOK, contains: "go_"},
		"wrong method":   {path: "/healthz", status: http.StatusMethodNotAllowed},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			method := http.MethodGet
			if name == "wrong method" {
				method = http.MethodPost
			}
			req := httptest.NewRequest(method, td.path, nil)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			assert.Equal(t, td.status, rec.Code)
			if td.contentType != "" {
				assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), td.contentType), rec.Header().Get("Content-Type"))
			}
			if td.contains != "" {
				assert.Contains(t, rec.Body.String(), td.contains)
			}
		})
	}
}

func TestServerAPIRent(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/pg-rent?persons=1&ac=non-ac&food=yes", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res multitool.RentResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, multitool.RentInputs{Persons: 1, AC: false, Food: true}, res.Inputs)
	assert.Equal(t, "For a 1-person Non-AC room with food: ₹8134.69", res.Summary)
	assert.InDelta(t, 8134.693877, res.Prediction, 1e-4)
	require.NotNil(t, res.Diagnostics)
	assert.False(t, res.Diagnostics.Collinearity)
}

func TestServerAPIModel(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/marks/model", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	m, err := regression.DecodeModel(rec.Body)
	require.NoError(t, err)
	require.Len(t, m.Weights, 1)
	assert.InDelta(t, 9.392776, m.Weights[0].Value, 1e-6)
	assert.InDelta(t, 0.436121, m.Intercept, 1e-6)
}

func TestServerMetrics(t *testing.T) {
	s := newTestServer(t)

	paths := []string{
		"/api/marks?hours=5",
		"/api/marks?hours=0",
		"/api/careers?subject=dance",
		"/pg-rent",
		"/careers?subject=dance",
		"/careers?subject=physics",
		"/marks?hours=30",
	}
	for _, p := range paths {
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
	}

	requests := s.Metrics().requests
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("marks", resultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues("marks", resultInvalidInput)))
	assert.Equal(t, 2.0, testutil.ToFloat64(requests.WithLabelValues("careers", resultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("careers", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(requests.WithLabelValues("pg-rent", resultOK)))

	// one series per regression mode, fed by both the api and the pages
	count, err := testutil.GatherAndCount(s.Metrics().Registry(), "multitool_prediction_value")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestServerMetricsDisabled(t *testing.T) {
	opt := NewDefaultOptions()
	opt.MetricsEnabled = false
	s, err := New(newTestToolkit(t), opt, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerServe(t *testing.T) {
	s := newTestServer(t)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, lis)
	}()

	resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok\n", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
