package emotion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/affectlab/facemeter/internal/httpc"
)

// labelScore is one entry of the remote service's response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// remoteResponse is the /classify response body.
type remoteResponse struct {
	Emotions        []labelScore `json:"emotions"`
	DominantEmotion string       `json:"dominant_emotion"`
}

// RemoteClassifier delegates classification to an HTTP service.
// The service accepts a JPEG body on POST /classify and answers with
// per-label percentage scores.
type RemoteClassifier struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a classifier backed by the service at baseURL.
func NewRemote(baseURL string) *RemoteClassifier {
	return &RemoteClassifier{
		baseURL: baseURL,
		client:  httpc.Client,
	}
}

// Classify posts the frame to the service and decodes the vector.
func (r *RemoteClassifier) Classify(jpeg []byte) (Vector, error) {
	req, err := http.NewRequest(http.MethodPost, r.baseURL+"/classify", bytes.NewReader(jpeg))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s: %s", ErrServiceUnavailable, resp.Status, string(body))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("emotion: decode response: %w", err)
	}

	v := make(Vector, len(Labels))
	for _, e := range out.Emotions {
		v[Label(e.Label)] = e.Score
	}
	if len(v) == 0 {
		return NeutralVector(), nil
	}
	return v, nil
}

// Close implements Classifier. The shared HTTP client stays open.
func (r *RemoteClassifier) Close() error {
	return nil
}
