package mirra

import "context"

// AgentStatus is the server-managed lifecycle state of an agent. The SDK
// never inspects or enforces transitions; it surfaces whatever the server
// returns.
type AgentStatus string

const (
	AgentStatusDraft     AgentStatus = "draft"
	AgentStatusPublished AgentStatus = "published"
)

func ValidAgentStatus(s string) bool {
	switch AgentStatus(s) {
	case AgentStatusDraft, AgentStatusPublished:
		return true
	}
	return false
}

// Agent is a server-owned agent record.
type Agent struct {
	ID           string      `json:"id"`
	Subdomain    string      `json:"subdomain"`
	Name         string      `json:"name"`
	Description  *string     `json:"description,omitempty"`
	SystemPrompt string      `json:"systemPrompt"`
	Enabled      bool        `json:"enabled"`
	Status       AgentStatus `json:"status"`
	CreatedAt    string      `json:"createdAt"`
	UpdatedAt    *string     `json:"updatedAt,omitempty"`
}

// CreateAgentParams are the fields accepted when creating an agent.
type CreateAgentParams struct {
	Subdomain    string  `json:"subdomain"`
	Name         string  `json:"name"`
	SystemPrompt string  `json:"systemPrompt"`
	Description  *string `json:"description,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
}

// UpdateAgentParams are the fields accepted when updating an agent. Nil
// fields are left untouched server-side.
type UpdateAgentParams struct {
	Name         *string `json:"name,omitempty"`
	SystemPrompt *string `json:"systemPrompt,omitempty"`
	Description  *string `json:"description,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
}

// AgentService exposes the /agents endpoints.
type AgentService struct {
	client *Client
}

// Create registers a new agent.
func (s *AgentService) Create(ctx context.Context, params CreateAgentParams) (*Agent, error) {
	var out Agent
	if err := s.client.do(ctx, "POST", "/agents", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches an agent by ID.
func (s *AgentService) Get(ctx context.Context, id string) (*Agent, error) {
	var out Agent
	if err := s.client.do(ctx, "GET", "/agents/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all agents.
func (s *AgentService) List(ctx context.Context) ([]Agent, error) {
	var out []Agent
	if err := s.client.do(ctx, "GET", "/agents", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies partial updates to an agent.
func (s *AgentService) Update(ctx context.Context, id string, params UpdateAgentParams) (*Agent, error) {
	var out Agent
	if err := s.client.do(ctx, "PATCH", "/agents/"+id, params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an agent.
func (s *AgentService) Delete(ctx context.Context, id string) (map[string]bool, error) {
	var out map[string]bool
	if err := s.client.do(ctx, "DELETE", "/agents/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
