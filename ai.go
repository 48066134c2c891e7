package mirra

import "context"

// ChatRole is the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// ChatRequest asks the AI for a completion.
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Model       *string       `json:"model,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"maxTokens,omitempty"`
}

// TokenUsage reports token consumption for one completion.
type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// ChatResponse is the AI's completion.
type ChatResponse struct {
	Content string     `json:"content"`
	Model   string     `json:"model"`
	Usage   TokenUsage `json:"usage"`
}

// DecisionOption is one candidate in a decide call.
type DecisionOption struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DecideRequest asks the AI to pick one of the given options.
type DecideRequest struct {
	Prompt  string           `json:"prompt"`
	Options []DecisionOption `json:"options"`
	Context map[string]any   `json:"context,omitempty"`
	Model   *string          `json:"model,omitempty"`
}

// DecideResponse names the selected option and the model's reasoning.
type DecideResponse struct {
	SelectedOption string `json:"selectedOption"`
	Reasoning      string `json:"reasoning"`
}

// BatchChatRequest carries multiple chat requests in one call. Partial
// failures, if any, are encoded by the server inside the returned array.
type BatchChatRequest struct {
	Requests []ChatRequest `json:"requests"`
}

// AIService exposes the /ai endpoints.
type AIService struct {
	client *Client
}

// Chat sends a chat request to the AI.
func (s *AIService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := s.client.do(ctx, "POST", "/ai/chat", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Decide asks the AI to choose among options.
func (s *AIService) Decide(ctx context.Context, req DecideRequest) (*DecideResponse, error) {
	var out DecideResponse
	if err := s.client.do(ctx, "POST", "/ai/decide", req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchChat processes multiple chat requests in a single call.
func (s *AIService) BatchChat(ctx context.Context, req BatchChatRequest) ([]ChatResponse, error) {
	var out []ChatResponse
	if err := s.client.do(ctx, "POST", "/ai/batchChat", req, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
