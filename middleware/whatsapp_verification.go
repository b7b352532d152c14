package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Hub-Signature-256"

// VerifyWhatsAppSignature rejects webhook payloads whose X-Hub-Signature-256 header is not
// the HMAC-SHA256 of the body under appSecret.
func VerifyWhatsAppSignature(appSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(signatureHeader)
		if signature == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing signature"})
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
			return
		}

		// Restore the body for subsequent handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		expectedSig := "sha256=" + CalculateHMAC(body, appSecret)
		if !hmac.Equal([]byte(signature), []byte(expectedSig)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
			return
		}

		c.Next()
	}
}

// CalculateHMAC returns the hex HMAC-SHA256 of data.
func CalculateHMAC(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
