package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"interviewhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const signatureHeader = "X-Signature-256"

// SignatureVerification checks the HMAC-SHA256 signature of the raw request
// body against the configured signing secret. A middleware built with an
// empty secret is a no-op, so unsigned deployments keep working.
func SignatureVerification(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		signature := extractSignature(c)
		if signature == "" {
			rejectUnauthorized(c, "missing signature header")
			return
		}

		body, err := readAndRestoreBody(c.Request)
		if err != nil {
			rejectUnauthorized(c, "failed to read request body")
			return
		}

		if !verifySignature(body, signature, secret) {
			rejectUnauthorized(c, "invalid webhook signature")
			return
		}

		c.Next()
	}
}

func extractSignature(c *gin.Context) string {
	header := c.GetHeader(signatureHeader)
	if header == "" {
		return ""
	}

	signature, found := strings.CutPrefix(header, "sha256=")
	if found {
		return signature
	}

	return header
}

func readAndRestoreBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	return body, nil
}

func verifySignature(body []byte, receivedSignature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedSignature := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expectedSignature), []byte(receivedSignature))
}

func rejectUnauthorized(c *gin.Context, reason string) {
	utils.GetLogger().Warn("Webhook verification failed",
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
		zap.String("ip", getClientIP(c)))
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
}
