package classifier

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	HeaderSignature = "X-Doodle-Signature"
	HeaderRequestID = "X-Request-Id"
	tokenTTL        = time.Minute
)

// Sign returns the hex HMAC-SHA512 of data keyed by secret.
func Sign(secret string, data []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// Token issues a short lived HS256 bearer token for the inference service.
func Token(secret, requestID string) (string, error) {
	claims := jwt.StandardClaims{
		Issuer:    "doodle",
		Id:        requestID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SendRequest performs one call against the inference service. When secret
// is set the body is signed and a bearer token attached.
func SendRequest(ctx context.Context, client *http.Client, method, url, secret string, data []byte, contentType string) ([]byte, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if secret != "" {
		token, err := Token(secret, requestID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sign token")
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(HeaderSignature, Sign(secret, data))
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to send request")
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference error: status %d, response: %s", res.StatusCode, string(respBody))
	}

	return respBody, nil
}
