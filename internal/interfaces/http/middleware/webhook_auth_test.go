package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	loggerpkg "waitlist.backend/pkg/logger"
)

func webhookRouter(hash string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	loggerpkg.Init("test")
	r := gin.New()
	r.POST("/hook", WebhookSecretMiddleware(hash), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestWebhookSecretMiddleware(t *testing.T) {
	orig := checkSecret
	t.Cleanup(func() { checkSecret = orig })
	checkSecret = func(secret, hash string) bool { return secret == "s3cret" && hash == "hashed" }

	cases := []struct {
		name   string
		hash   string
		secret string
		want   int
	}{
		{name: "disabled without hash", hash: "", secret: "s3cret", want: http.StatusNotFound},
		{name: "missing secret", hash: "hashed", secret: "", want: http.StatusUnauthorized},
		{name: "wrong secret", hash: "hashed", secret: "nope", want: http.StatusUnauthorized},
		{name: "valid secret", hash: "hashed", secret: "s3cret", want: http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tc.secret != "" {
				req.Header.Set(WebhookSecretHeader, tc.secret)
			}
			rec := httptest.NewRecorder()
			webhookRouter(tc.hash).ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
			}
		})
	}
}
