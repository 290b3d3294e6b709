// internal/services/artgen_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/podworks/pod-backend/internal/config"
)

// ImageGenerator produces one image for a prompt/style pair. Satisfied by
// ArtGenService; tests substitute a stub.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, style string) (*GeneratedImage, error)
}

type GeneratedImage struct {
	ImageURL string  `json:"image_url"`
	Model    string  `json:"model"`
	Cost     float64 `json:"cost"`
}

type modelStrategy struct {
	Model string
	Cost  float64
}

// Model selection per art style. Typography needs a model that renders text
// well; premium styles go to flux-1.1-pro, simpler styles to the cheaper
// flux-dev.
var modelStrategies = map[string]modelStrategy{
	"typography": {Model: "ideogram-ai/ideogram-v3-turbo", Cost: 0.05},
	"abstract":   {Model: "black-forest-labs/flux-1.1-pro", Cost: 0.04},
	"minimalist": {Model: "black-forest-labs/flux-1.1-pro", Cost: 0.04},
	"vintage":    {Model: "black-forest-labs/flux-1.1-pro", Cost: 0.04},
	"modern":     {Model: "black-forest-labs/flux-1.1-pro", Cost: 0.04},
	"watercolor": {Model: "black-forest-labs/flux-dev", Cost: 0.03},
	"geometric":  {Model: "black-forest-labs/flux-dev", Cost: 0.03},
	"botanical":  {Model: "black-forest-labs/flux-dev", Cost: 0.03},
}

const (
	defaultModel = "black-forest-labs/flux-1.1-pro"
	defaultCost  = 0.04

	testingModel = "black-forest-labs/flux-schnell"
	testingCost  = 0.003
)

// ArtGenService calls the Replicate HTTP API to generate artwork. In testing
// mode every style routes to the cheap schnell model.
type ArtGenService struct {
	httpClient *http.Client
	config     *config.Config
}

func NewArtGenService(cfg *config.Config) *ArtGenService {
	return &ArtGenService{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		config:     cfg,
	}
}

// ModelForStyle returns the model and estimated cost for a style.
func (s *ArtGenService) ModelForStyle(style string) (string, float64) {
	if s.config.Replicate.TestingMode {
		return testingModel, testingCost
	}

	strategy, ok := modelStrategies[style]
	if !ok {
		return defaultModel, defaultCost
	}
	return strategy.Model, strategy.Cost
}

type replicatePrediction struct {
	ID     string   `json:"id"`
	Status string   `json:"status"`
	Output []string `json:"output"`
	Error  string   `json:"error,omitempty"`
}

func (s *ArtGenService) Generate(ctx context.Context, prompt, style string) (*GeneratedImage, error) {
	if s.config.Replicate.APIToken == "" {
		return nil, fmt.Errorf("%w: replicate API token not configured", ErrUpstream)
	}

	model, cost := s.ModelForStyle(style)

	logrus.WithFields(logrus.Fields{
		"style": style,
		"model": model,
	}).Info("Generating artwork")

	prediction, err := s.createPrediction(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	prediction, err = s.waitForPrediction(ctx, prediction.ID)
	if err != nil {
		return nil, err
	}

	if len(prediction.Output) == 0 {
		return nil, fmt.Errorf("%w: prediction returned no output", ErrUpstream)
	}

	return &GeneratedImage{
		ImageURL: prediction.Output[0],
		Model:    model,
		Cost:     cost,
	}, nil
}

func (s *ArtGenService) createPrediction(ctx context.Context, model, prompt string) (*replicatePrediction, error) {
	input := map[string]interface{}{
		"prompt":        prompt,
		"aspect_ratio":  "1:1",
		"output_format": "png",
	}

	// Schnell only needs 4 inference steps
	if model == testingModel {
		input["num_inference_steps"] = 4
	}

	body, _ := json.Marshal(map[string]interface{}{"input": input})

	url := fmt.Sprintf("%s/models/%s/predictions", s.config.Replicate.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.config.Replicate.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: replicate returned HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var prediction replicatePrediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("%w: failed to decode prediction: %v", ErrUpstream, err)
	}

	return &prediction, nil
}

func (s *ArtGenService) waitForPrediction(ctx context.Context, id string) (*replicatePrediction, error) {
	url := fmt.Sprintf("%s/predictions/%s", s.config.Replicate.BaseURL, id)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+s.config.Replicate.APIToken)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		var prediction replicatePrediction
		err = json.NewDecoder(resp.Body).Decode(&prediction)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode prediction: %v", ErrUpstream, err)
		}

		switch prediction.Status {
		case "succeeded":
			return &prediction, nil
		case "failed", "canceled":
			return nil, fmt.Errorf("%w: prediction %s: %s", ErrUpstream, prediction.Status, prediction.Error)
		}
	}
}
