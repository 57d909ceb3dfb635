package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation("AllBooks", 10*time.Millisecond, nil)
	m.ObserveOperation("AddBook", 5*time.Millisecond, []string{"UNAUTHENTICATED"})
	m.ObserveOperation("", time.Millisecond, nil)

	body := scrape(t, m)
	assert.Contains(t, body, `catalog_graphql_operations_total{operation="AllBooks",status="ok"} 1`)
	assert.Contains(t, body, `catalog_graphql_operations_total{operation="AddBook",status="error"} 1`)
	assert.Contains(t, body, `catalog_graphql_operations_total{operation="anonymous",status="ok"} 1`)
	assert.Contains(t, body, `catalog_graphql_errors_total{code="UNAUTHENTICATED"} 1`)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveOperation("x", time.Second, []string{"INTERNAL_SERVER_ERROR"})
		m.LoginFailed()
		m.LoginThrottled()
		m.TokenRejected()
		m.ObserveHTTP("POST", "/graphql", 200)
	})
}

func TestHandler_ExposesCatalogMetrics(t *testing.T) {
	m := New()
	m.LoginFailed()
	m.ObserveHTTP(http.MethodPost, "/graphql", http.StatusOK)

	body := scrape(t, m)
	assert.Contains(t, body, "catalog_auth_login_failures_total 1")
	assert.Contains(t, body, `catalog_http_requests_total{method="POST",route="/graphql",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
