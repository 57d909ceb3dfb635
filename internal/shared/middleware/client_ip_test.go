package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded first hop", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1234", want: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "10.0.0.1:1234", want: "198.51.100.2"},
		{name: "invalid forwarded falls through", headers: map[string]string{"X-Forwarded-For": "not-an-ip"}, remote: "192.0.2.9:80", want: "192.0.2.9"},
		{name: "remote addr", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			r := gin.New()
			r.Use(ClientIP())
			r.GET("/", func(c *gin.Context) {
				fromCtx = ClientIPFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, fromCtx)
		})
	}
}
