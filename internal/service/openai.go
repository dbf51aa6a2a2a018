package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"placefinder/internal/config"
	"placefinder/internal/model"

	"go.uber.org/zap"
)

// historyTurns caps the conversation turns quoted to the model
const historyTurns = 6

// OpenAIClient handles OpenAI-compatible chat completion APIs such as Groq
type OpenAIClient struct {
	config     *config.LLMConfig
	persona    Persona
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg *config.LLMConfig, persona Persona, logger *zap.Logger) *OpenAIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIClient{
		config:  cfg,
		persona: persona,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.With(zap.String("component", "responder")),
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *OpenAIClient) IsEnabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("chat completion API is not enabled (missing API key)")
	}

	// Use configured model if not specified
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	// Apply default parameters from config
	if req.Temperature == 0 && c.config.Temperature > 0 {
		req.Temperature = c.config.Temperature
	}
	if req.TopP == 0 && c.config.TopP > 0 {
		req.TopP = c.config.TopP
	}
	if req.MaxTokens == 0 && c.config.MaxTokens > 0 {
		req.MaxTokens = c.config.MaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", strings.TrimRight(c.config.APIBase, "/"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// Answer asks the model to phrase an answer restricted to the catalog
// context. An empty context never reaches the network.
func (c *OpenAIClient) Answer(ctx context.Context, query, catalogContext string, intent *model.Intent, history []model.Message) (string, error) {
	if strings.TrimSpace(catalogContext) == "" {
		return NoDataAnswer, nil
	}
	if !c.config.Enabled {
		c.logger.Debug("responder disabled, returning no-data answer")
		return NoDataAnswer, nil
	}

	resp, err := c.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: c.systemPrompt()},
			{Role: "user", Content: buildUserPrompt(query, catalogContext, intent, history)},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from chat completion API")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", fmt.Errorf("empty response from chat completion API")
	}

	c.logger.Debug("responder answered",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return answer, nil
}

func (c *OpenAIClient) systemPrompt() string {
	return fmt.Sprintf(`You are %s, a %s-based travel assistant.

RULES:
- Use ONLY the data provided in CONTEXT. Do NOT add or invent any entities, places, or categories.
- Phrase and summarize only what is in CONTEXT. Do NOT invent hotels, theaters, amenities, ratings, or locations.
- If CONTEXT does not answer the question, reply exactly: %s
- Respond naturally like a helpful travel assistant.
- Do NOT say phrases like "here is a summary" or "based on the context".`,
		c.persona.Name, c.persona.City, NoDataAnswer)
}

func buildUserPrompt(query, catalogContext string, intent *model.Intent, history []model.Message) string {
	var b strings.Builder

	if len(history) > 0 {
		if len(history) > historyTurns {
			history = history[len(history)-historyTurns:]
		}
		b.WriteString("CONVERSATION:\n")
		for _, m := range history {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "USER QUERY:\n%s\n\n", query)

	if intent != nil && len(intent.Attributes) > 0 {
		fmt.Fprintf(&b, "REQUESTED DETAILS:\n%s\n\n", strings.Join(intent.Attributes, ", "))
	}

	fmt.Fprintf(&b, "CONTEXT:\n%s\n", catalogContext)
	return b.String()
}
