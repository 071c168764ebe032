package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"screentime/entity"
)

const (
	DefaultEndpoint = "https://router.huggingface.co/hf-inference/models"
	DefaultModel    = "facebook/bart-large-mnli"
)

// HuggingFace calls the Inference API zero-shot classification task.
type HuggingFace struct {
	Endpoint string
	Model    string
	Token    string
	client   *http.Client
}

func NewHuggingFace(endpoint, model, token string, timeout time.Duration) *HuggingFace {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if model == "" {
		model = DefaultModel
	}
	return &HuggingFace{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Model:    model,
		Token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// zeroShotResponse is the legacy response shape.
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

// labelScore is the shape returned by the router endpoint.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (h *HuggingFace) url() string {
	return h.Endpoint + "/" + h.Model
}

// Classify makes a single request. Any transport or decoding failure is
// reported as ErrClassifierUnavailable.
func (h *HuggingFace) Classify(ctx context.Context, text string, labels []string) ([]Prediction, error) {
	body, err := json.Marshal(zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, fmt.Errorf("Classify: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Classify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Classify: %w: %v", entity.ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("Classify: %w: read body: %v", entity.ErrClassifierUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Classify: %w: HTTP %d", entity.ErrClassifierUnavailable, resp.StatusCode)
	}

	preds, err := decodePredictions(data)
	if err != nil {
		return nil, fmt.Errorf("Classify: %w: %v", entity.ErrClassifierUnavailable, err)
	}
	return preds, nil
}

func decodePredictions(data []byte) ([]Prediction, error) {
	var preds []Prediction

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []labelScore
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		for _, it := range items {
			preds = append(preds, Prediction{Label: it.Label, Score: it.Score})
		}
	} else {
		var resp zeroShotResponse
		if err := json.Unmarshal(trimmed, &resp); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if len(resp.Labels) != len(resp.Scores) {
			return nil, fmt.Errorf("decode response: %d labels for %d scores", len(resp.Labels), len(resp.Scores))
		}
		for i, l := range resp.Labels {
			preds = append(preds, Prediction{Label: l, Score: resp.Scores[i]})
		}
	}

	if len(preds) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return preds[i].Score > preds[j].Score
	})
	return preds, nil
}
