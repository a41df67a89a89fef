package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/inkrank/doodle/encoding/tensor"
	"github.com/inkrank/doodle/log"
)

const tensorContentType = "application/octet-stream"

// HTTPBackend talks to an inference service exposing GET /health and
// POST /predict. The request body is the binary tensor; the reply is
// {"probabilities": [...]}.
type HTTPBackend struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewHTTPBackend(baseURL, secret string, timeout time.Duration) *HTTPBackend {
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: timeout},
	}
}

type predictResponse struct {
	Probabilities []float32 `json:"probabilities"`
}

func (b *HTTPBackend) Health(ctx context.Context) error {
	_, err := SendRequest(ctx, b.client, http.MethodGet, b.baseURL+"/health", b.secret, nil, "")
	if err != nil {
		return errors.Wrap(err, "inference service unhealthy")
	}
	return nil
}

func (b *HTTPBackend) Classify(ctx context.Context, t *tensor.Tensor) ([]float32, error) {
	data, err := t.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "can't encode tensor")
	}

	body, err := SendRequest(ctx, b.client, http.MethodPost, b.baseURL+"/predict", b.secret, data, tensorContentType)
	if err != nil {
		return nil, err
	}
	log.Trace.Printf("predict: %d byte tensor, %d byte response", len(data), len(body))

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "can't decode prediction")
	}
	return resp.Probabilities, nil
}
