package mirra

import "context"

// TemplateComponents lists the entities a template installs.
type TemplateComponents struct {
	Agents    []string `json:"agents,omitempty"`
	Scripts   []string `json:"scripts,omitempty"`
	Resources []string `json:"resources,omitempty"`
}

// Template is a catalog record describing an installable bundle.
type Template struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Category    *string            `json:"category,omitempty"`
	Components  TemplateComponents `json:"components"`
	CreatedAt   string             `json:"createdAt"`
}

// TemplateService exposes the /templates endpoints.
type TemplateService struct {
	client *Client
}

// List returns the available templates.
func (s *TemplateService) List(ctx context.Context) ([]Template, error) {
	var out []Template
	if err := s.client.do(ctx, "GET", "/templates", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a template by ID.
func (s *TemplateService) Get(ctx context.Context, id string) (*Template, error) {
	var out Template
	if err := s.client.do(ctx, "GET", "/templates/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Install provisions the template's components into the caller's account.
func (s *TemplateService) Install(ctx context.Context, id string) (map[string]bool, error) {
	var out map[string]bool
	if err := s.client.do(ctx, "POST", "/templates/"+id+"/install", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
