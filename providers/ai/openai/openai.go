package openai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vatsavvamsi-hub/autonomous-task-agent/internal/utils"
	"github.com/vatsavvamsi-hub/autonomous-task-agent/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
)

// Provider implements [ai.Provider] against the OpenAI chat-completions API.
// It also works with any OpenAI-compatible endpoint via WithBaseURL.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New returns a Provider pointed at the public OpenAI API. Configure it with
// the builder methods:
//
//	provider := openai.New().WithAPIKey(key).WithBaseURL(url)
func New() *Provider {
	return &Provider{
		baseURL: defaultBaseURL,
	}
}

// Ensure Provider implements ai.Provider at compile time.
var _ ai.Provider = (*Provider)(nil)

// WithAPIKey sets the API key used for authenticating requests.
func (p *Provider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the default base URL for API requests.
func (p *Provider) WithBaseURL(baseURL string) ai.Provider {
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

// WithHTTPClient sets the HTTP client used for outbound requests.
func (p *Provider) WithHTTPClient(httpClient *http.Client) ai.Provider {
	p.httpClient = httpClient
	return p
}

// SendMessage sends the full conversation to the chat-completions endpoint
// and returns the first choice as an [ai.ChatResponse].
func (p *Provider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	wireReq := chatCompletionsRequest{
		Model:    request.Model,
		Messages: make([]chatMessage, 0, len(request.Messages)),
	}

	for _, msg := range request.Messages {
		wireReq.Messages = append(wireReq.Messages, chatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	if request.GenerationConfig != nil {
		temp := request.GenerationConfig.Temperature
		wireReq.Temperature = &temp
		wireReq.MaxTokens = request.GenerationConfig.MaxTokens
	}

	if request.ResponseFormat != nil && request.ResponseFormat.Type != "" {
		wireReq.ResponseFormat = &responseFormatObject{Type: request.ResponseFormat.Type}
	}

	url := p.baseURL + chatCompletionsEndpoint
	_, wireRes, err := utils.DoPostSync[chatCompletionsResponse](ctx, p.httpClient, url, p.apiKey, wireReq)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}

	if wireRes.Error != nil {
		return nil, fmt.Errorf("openai: api error (%s): %s", wireRes.Error.Type, wireRes.Error.Message)
	}

	if len(wireRes.Choices) == 0 {
		return nil, fmt.Errorf("openai: response contained no choices")
	}

	choice := wireRes.Choices[0]
	response := &ai.ChatResponse{
		ID:           wireRes.ID,
		Model:        wireRes.Model,
		Created:      wireRes.Created,
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
	}

	if wireRes.Usage != nil {
		response.Usage = &ai.Usage{
			PromptTokens:     wireRes.Usage.PromptTokens,
			CompletionTokens: wireRes.Usage.CompletionTokens,
			TotalTokens:      wireRes.Usage.TotalTokens,
		}
	}

	return response, nil
}
