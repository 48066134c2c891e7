package mirra

import (
	"context"
	"encoding/json"
)

// ResourceStatus is the availability state of a resource.
type ResourceStatus string

const (
	ResourceStatusActive   ResourceStatus = "active"
	ResourceStatusInactive ResourceStatus = "inactive"
)

// Resource is a server-owned resource record (a database, webhook,
// integration, or similar).
type Resource struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Type        string         `json:"type"`
	Config      map[string]any `json:"config,omitempty"`
	Status      ResourceStatus `json:"status"`
	CreatedAt   string         `json:"createdAt"`
}

// CallResourceParams name the resource, the method to invoke on it, and
// the method parameters. The parameter and return shapes are defined by
// the resource itself.
type CallResourceParams struct {
	ResourceID string         `json:"resourceId"`
	Method     string         `json:"method"`
	Params     map[string]any `json:"params,omitempty"`
}

// ResourceService exposes the /resources endpoints.
type ResourceService struct {
	client *Client
}

// Call invokes a method on a resource. The result is whatever JSON the
// resource returns; decode it into a caller-defined type.
func (s *ResourceService) Call(ctx context.Context, params CallResourceParams) (json.RawMessage, error) {
	var out json.RawMessage
	if err := s.client.do(ctx, "POST", "/resources/call", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the resources available to the caller.
func (s *ResourceService) List(ctx context.Context) ([]Resource, error) {
	var out []Resource
	if err := s.client.do(ctx, "GET", "/resources", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a resource by ID.
func (s *ResourceService) Get(ctx context.Context, id string) (*Resource, error) {
	var out Resource
	if err := s.client.do(ctx, "GET", "/resources/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
