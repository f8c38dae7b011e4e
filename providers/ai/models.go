package ai

/*
	##### PROVIDER INPUT #####
*/

// ChatRequest represents a request to send a chat conversation to a provider.
type ChatRequest struct {
	Model            string            `json:"model,omitempty"`             // Model name or identifier
	Messages         []Message         `json:"messages"`                    // Full ordered conversation, system message included
	ResponseFormat   *ResponseFormat   `json:"response_format,omitempty"`   // Optional response format hint
	GenerationConfig *GenerationConfig `json:"generation_config,omitempty"` // Optional generation configuration
}

// Message represents a single message in a conversation. Messages are
// immutable once appended to a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// GenerationConfig carries sampling parameters forwarded to the provider.
type GenerationConfig struct {
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature [0..2]. Higher => more random; lower => more deterministic.
	MaxTokens   int     `json:"max_tokens,omitempty"`  // Optional max tokens for the response
}

// ResponseFormat asks the provider to constrain its output shape.
type ResponseFormat struct {
	Type string `json:"type,omitempty"` // "text" or "json_object"
}

/*
	##### PROVIDER OUTPUT #####
*/

// Usage reports token accounting for a single completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// ChatResponse represents the completed response for a chat request.
type ChatResponse struct {
	ID           string `json:"id"`
	Model        string `json:"model"`
	Created      int64  `json:"created"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	Usage        *Usage `json:"usage,omitempty"`
}

/*
	##### ENUMS #####
*/

// MessageRole represents the role of a message; compatible with string.
//
// Observations fed back after tool execution travel as user messages, so the
// conversation only ever holds the three roles below.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // System instructions/configuration
	RoleUser      MessageRole = "user"      // End-user task or fed-back observation
	RoleAssistant MessageRole = "assistant" // Model reply
)
