package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"insurance-chatbot-backend/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSignedRouter(secret string) *gin.Engine {
	router := gin.New()
	router.POST("/webhook", VerifyWhatsAppSignature(secret), func(c *gin.Context) {
		body, _ := c.GetRawData()
		c.String(http.StatusOK, string(body))
	})
	return router
}

func TestVerifyWhatsAppSignature(t *testing.T) {
	const secret = "app-secret"
	body := `{"object":"whatsapp_business_account"}`

	tests := []struct {
		name      string
		signature string
		status    int
	}{
		{name: "valid", signature: "sha256=" + CalculateHMAC([]byte(body), secret), status: http.StatusOK},
		{name: "missing", signature: "", status: http.StatusUnauthorized},
		{name: "wrong secret", signature: "sha256=" + CalculateHMAC([]byte(body), "other"), status: http.StatusUnauthorized},
		{name: "no prefix", signature: CalculateHMAC([]byte(body), secret), status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
			if tt.signature != "" {
				req.Header.Set(signatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()
			newSignedRouter(secret).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				// body is restored for the next handler
				assert.Equal(t, body, w.Body.String())
			}
		})
	}
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:3000"}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(logger.NewTestLogger(t)))
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
