package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	config "github.com/eduvox/backend/config/web"
	"github.com/eduvox/backend/pkg/llmjson"
	"github.com/eduvox/backend/services/debate/consts"
	"github.com/eduvox/backend/services/debate/entity"
)

var ErrEmptyResponse = errors.New("no response from gemini")

// Client is a debate opponent backed by the Gemini generateContent API.
// Requests are throttled to the configured requests per minute.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	log       *slog.Logger
	baseURL   string
	model     string
	apiKey    string
	maxTokens int
}

func New(cfg *config.GeminiConfig, log *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		http:      &http.Client{Timeout: 60 * time.Second},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit/60), 1),
		log:       log.With("component", "gemini.Client"),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		model:     cfg.Model,
		apiKey:    cfg.APIKey,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (c *Client) Argue(ctx context.Context, topic string, stance entity.Stance, stage entity.Stage) (string, error) {
	prompt := fmt.Sprintf(`You are a debate opponent. Generate a %s argument about "%s" from the %s perspective.
Keep it under %d words. Reply with the argument only.`,
		stageName(stage), topic, stance, consts.WordLimits[stage])
	return c.Generate(ctx, prompt)
}

func (c *Client) Respond(ctx context.Context, topic string, stance entity.Stance, userText string) (string, error) {
	prompt := fmt.Sprintf(`You are a debate opponent arguing the %s side of "%s".
Respond to this point from your opponent: "%s"
Keep it under %d words. Reply with the response only.`,
		stance, topic, userText, consts.WordLimits[entity.StageArgument])
	return c.Generate(ctx, prompt)
}

func (c *Client) Question(ctx context.Context, topic string, stance entity.Stance) (string, error) {
	prompt := fmt.Sprintf(`You are a debate opponent arguing the %s side of "%s".
Ask one challenging rebuttal question. Keep it under %d words. Reply with the question only.`,
		stance, topic, consts.WordLimits[entity.StageRebuttalQuestions])
	return c.Generate(ctx, prompt)
}

func (c *Client) Feedback(ctx context.Context, report *entity.Report) (*entity.Feedback, error) {
	var transcript strings.Builder
	for _, turn := range report.DebateFlow {
		fmt.Fprintf(&transcript, "[%s] %s: %s\n", turn.Stage, turn.Speaker, turn.Text)
	}

	prompt := fmt.Sprintf(`You are a debate coach. The student argued the %s side of "%s".

DEBATE:
%s
Return ONLY valid JSON of the form {"strengths": ["..."], "improvements": ["..."]} with at most three items each.`,
		report.UserStance, report.Topic, transcript.String())

	text, err := c.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{}
	if err := llmjson.ExtractObject(text, feedback); err != nil {
		return nil, fmt.Errorf("failed to parse coach feedback: %w", err)
	}
	if feedback.Strengths == nil {
		feedback.Strengths = []string{}
	}
	if feedback.Improvements == nil {
		feedback.Improvements = []string{}
	}
	return feedback, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	payload, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: 0.7, MaxOutputTokens: c.maxTokens},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	c.log.Debug("gemini call",
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
		"response_bytes", len(body),
	)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func stageName(stage entity.Stage) string {
	if stage == entity.StageRebuttalQuestions {
		return "rebuttal"
	}
	return string(stage)
}
