package classifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkrank/doodle/encoding/tensor"
)

const testSecret = "s3cret"

func inferenceServer(t *testing.T, probs []float32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		token, err := jwt.Parse(auth, func(*jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/health":
			w.Write([]byte(`{"status":"ok"}`))
		case "/predict":
			body, _ := io.ReadAll(r.Body)
			if r.Header.Get(HeaderSignature) != Sign(testSecret, body) {
				http.Error(w, "bad signature", http.StatusForbidden)
				return
			}
			var in tensor.Tensor
			if err := in.UnmarshalBinary(body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(predictResponse{Probabilities: probs})
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestHTTPBackendClassify(t *testing.T) {
	srv := inferenceServer(t, []float32{0.1, 0.7, 0.2})
	defer srv.Close()

	b := NewHTTPBackend(srv.URL+"/", testSecret, time.Second)
	require.NoError(t, b.Health(context.Background()))

	probs, err := b.Classify(context.Background(), tensor.New(1, 28, 28, 1))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.7, 0.2}, probs)
}

func TestHTTPBackendWrongSecret(t *testing.T) {
	srv := inferenceServer(t, nil)
	defer srv.Close()

	b := NewHTTPBackend(srv.URL, "other", time.Second)
	err := b.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSign(t *testing.T) {
	a := Sign("k", []byte("payload"))
	assert.Len(t, a, 128)
	assert.Equal(t, a, Sign("k", []byte("payload")))
	assert.NotEqual(t, a, Sign("k2", []byte("payload")))
}
