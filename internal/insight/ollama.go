package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// readmeTruncateLimit bounds how much README text is sent to the model.
	readmeTruncateLimit = 2000

	defaultRequestTimeout = 120 * time.Second
)

// OllamaClient talks to a local Ollama server over its HTTP API.
type OllamaClient struct {
	host   string
	model  string
	client *http.Client
}

// NewOllamaClient creates a client for the given base URL and model. The
// host and model come from explicit configuration; there is no ambient
// default beyond the zero timeout fallback.
func NewOllamaClient(host, model string) *OllamaClient {
	return &OllamaClient{
		host:   strings.TrimRight(host, "/"),
		model:  model,
		client: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// Model returns the configured model name.
func (c *OllamaClient) Model() string { return c.model }

// Available reports whether the Ollama server answers at all.
func (c *OllamaClient) Available(ctx context.Context) bool {
	_, err := c.ListModels(ctx)
	return err == nil
}

// ListModels returns the model names the server has pulled.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: API returned %d: %s", resp.StatusCode, string(body))
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("ollama: parse response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// AnalyzeReadme asks the model to judge README quality and returns the
// structured verdict.
func (c *OllamaClient) AnalyzeReadme(ctx context.Context, readme string) (*ReadmeInsight, error) {
	if runes := []rune(readme); len(runes) > readmeTruncateLimit {
		readme = string(runes[:readmeTruncateLimit])
	}

	prompt := fmt.Sprintf(`You are a Senior Technical Recruiter. Analyze the following README content from a GitHub repository.
Evaluate it on: Clarity, Completeness, and Technical Depth.

README Content (truncated):
%s

Output a concise JSON object with:
- score (0-100)
- strengths (list of strings)
- weaknesses (list of strings)`, readme)

	content, err := c.chat(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var wire struct {
		Score      float64  `json:"score"`
		Strengths  []string `json:"strengths"`
		Weaknesses []string `json:"weaknesses"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return nil, fmt.Errorf("ollama: parse readme verdict: %w", err)
	}

	return &ReadmeInsight{
		Score:      int(wire.Score),
		Strengths:  wire.Strengths,
		Weaknesses: wire.Weaknesses,
	}, nil
}

// SummarizeProfile asks the model for a two-paragraph executive summary.
func (c *OllamaClient) SummarizeProfile(ctx context.Context, in ProfileSummaryInput) (string, error) {
	prompt := fmt.Sprintf(`You are an elite Hiring Manager. Write a 2-paragraph executive summary for a developer with the following profile data:

Profile Data:
- Username: %s
- Hiring Readiness Score: %d/100 (%s)
- Primary Language: %s
- Total Repos: %d
- Top 3 Repos: %s
- Role Fits: %s

Focus on their strengths, potential fit for roles, and critical areas for improvement. Be professional and direct.`,
		in.Username, in.Score, in.Tier, in.PrimaryLanguage, in.TotalRepos,
		strings.Join(in.TopRepoNames, ", "), strings.Join(in.RoleFitLines, "; "))

	return c.chat(ctx, prompt, false)
}

// chat runs a single-message chat completion. jsonFormat forces the model
// to emit a JSON object.
func (c *OllamaClient) chat(ctx context.Context, prompt string, jsonFormat bool) (string, error) {
	reqBody := ollamaChatRequest{
		Model:  c.model,
		Stream: false,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
	}
	if jsonFormat {
		reqBody.Format = "json"
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ollama: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama: API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result ollamaChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("ollama: parse response: %w", err)
	}
	if result.Message.Content == "" {
		return "", fmt.Errorf("ollama: empty response content")
	}

	return result.Message.Content, nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Format   string          `json:"format,omitempty"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
