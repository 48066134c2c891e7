package mirra

import "context"

// MemoryEntity is a unit of agent memory. Content is required; everything
// else is optional. Embedding, when supplied, overrides server-side
// embedding generation.
type MemoryEntity struct {
	ID        string         `json:"id,omitempty"`
	Content   string         `json:"content"`
	Type      string         `json:"type,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding,omitempty"`
}

// MemorySearchQuery selects memories by semantic similarity to Query.
type MemorySearchQuery struct {
	Query     string         `json:"query"`
	Limit     *int           `json:"limit,omitempty"`
	Threshold *float64       `json:"threshold,omitempty"`
	Filters   map[string]any `json:"filters,omitempty"`
}

// MemorySearchResult is one scored hit. Ranking is done server-side.
type MemorySearchResult struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Type     string         `json:"type,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}

// MemoryQueryParams filters memories without similarity ranking.
type MemoryQueryParams struct {
	Filters map[string]any `json:"filters,omitempty"`
	Limit   *int           `json:"limit,omitempty"`
}

// MemoryUpdateParams carries the mutable fields of a memory entity.
type MemoryUpdateParams struct {
	Content  *string        `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MemoryService exposes the /memory endpoints.
type MemoryService struct {
	client *Client
}

// Create stores a new memory entity and returns the server-assigned
// identifiers (typically {"id": ...}).
func (s *MemoryService) Create(ctx context.Context, entity MemoryEntity) (map[string]string, error) {
	var out map[string]string
	if err := s.client.do(ctx, "POST", "/memory", entity, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search returns memories ranked by semantic similarity.
func (s *MemoryService) Search(ctx context.Context, query MemorySearchQuery) ([]MemorySearchResult, error) {
	var out []MemorySearchResult
	if err := s.client.do(ctx, "POST", "/memory/search", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Query returns memories matching the given filters.
func (s *MemoryService) Query(ctx context.Context, params MemoryQueryParams) ([]MemoryEntity, error) {
	var out []MemoryEntity
	if err := s.client.do(ctx, "POST", "/memory/query", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne fetches a single memory by ID. The result is nil when the
// server reports no match.
func (s *MemoryService) FindOne(ctx context.Context, id string) (*MemoryEntity, error) {
	var out *MemoryEntity
	body := map[string]string{"id": id}
	if err := s.client.do(ctx, "POST", "/memory/findOne", body, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type memoryUpdateBody struct {
	ID       string         `json:"id"`
	Content  *string        `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Update applies partial updates to a memory entity.
func (s *MemoryService) Update(ctx context.Context, id string, updates MemoryUpdateParams) (map[string]bool, error) {
	var out map[string]bool
	body := memoryUpdateBody{
		ID:       id,
		Content:  updates.Content,
		Metadata: updates.Metadata,
	}
	if err := s.client.do(ctx, "POST", "/memory/update", body, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a memory entity.
func (s *MemoryService) Delete(ctx context.Context, id string) (map[string]bool, error) {
	var out map[string]bool
	body := map[string]string{"id": id}
	if err := s.client.do(ctx, "POST", "/memory/delete", body, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
