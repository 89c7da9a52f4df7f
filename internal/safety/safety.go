// Package safety calls the external content moderation API before uploaded
// media is persisted.
package safety

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Checker validates uploaded bytes against a moderation service
type Checker interface {
	// EnsureSafe returns an error when the content is rejected or the
	// check cannot be completed.
	EnsureSafe(ctx context.Context, data []byte, mimeType string) error
}

// Config for the moderation API client. With an empty URL or key the check
// is skipped with a warning, matching a development setup without the
// service available.
type Config struct {
	APIURL     string
	APIKey     string
	Strictness float64
}

type checker struct {
	cfg    Config
	client *http.Client
	log    *zap.Logger
}

// New creates a Checker
func New(cfg Config, logger *zap.Logger) Checker {
	if cfg.Strictness == 0 {
		cfg.Strictness = 0.6
	}
	return &checker{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
	}
}

type moderationRequest struct {
	MimeType   string  `json:"mimeType"`
	Data       string  `json:"data"`
	Strictness float64 `json:"strictness"`
}

type moderationResponse struct {
	Safe   bool     `json:"safe"`
	Score  float64  `json:"score"`
	Labels []string `json:"labels"`
}

// ErrUnsafeContent is returned when the moderation service rejects content
var ErrUnsafeContent = fmt.Errorf("content failed the safety check")

func (c *checker) EnsureSafe(ctx context.Context, data []byte, mimeType string) error {
	if c.cfg.APIURL == "" || c.cfg.APIKey == "" {
		c.log.Warn("moderation API not configured, allowing upload unchecked")
		return nil
	}

	payload, err := json.Marshal(moderationRequest{
		MimeType:   mimeType,
		Data:       base64.StdEncoding.EncodeToString(data),
		Strictness: c.cfg.Strictness,
	})
	if err != nil {
		return fmt.Errorf("encode moderation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build moderation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call moderation API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("moderation API returned status %d", resp.StatusCode)
	}

	var result moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode moderation response: %w", err)
	}
	if !result.Safe {
		c.log.Info("upload rejected by moderation",
			zap.Float64("score", result.Score),
			zap.Strings("labels", result.Labels))
		return ErrUnsafeContent
	}
	return nil
}
