package mirra

import "context"

// ScriptRuntime selects the execution environment for a script.
type ScriptRuntime string

const (
	RuntimeNodeJS18  ScriptRuntime = "nodejs18"
	RuntimePython311 ScriptRuntime = "python3.11"
)

func ValidScriptRuntime(r string) bool {
	switch ScriptRuntime(r) {
	case RuntimeNodeJS18, RuntimePython311:
		return true
	}
	return false
}

// ScriptStatus is the server-managed lifecycle state of a script.
type ScriptStatus string

const (
	ScriptStatusDraft    ScriptStatus = "draft"
	ScriptStatusDeployed ScriptStatus = "deployed"
	ScriptStatusFailed   ScriptStatus = "failed"
)

func ValidScriptStatus(s string) bool {
	switch ScriptStatus(s) {
	case ScriptStatusDraft, ScriptStatusDeployed, ScriptStatusFailed:
		return true
	}
	return false
}

// ScriptConfig bounds a script's execution. Timeout is in milliseconds,
// Memory in megabytes.
type ScriptConfig struct {
	Timeout          int      `json:"timeout,omitempty"`
	Memory           int      `json:"memory,omitempty"`
	AllowedResources []string `json:"allowedResources,omitempty"`
}

// Script is a server-owned script record.
type Script struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Code        string        `json:"code"`
	Runtime     ScriptRuntime `json:"runtime"`
	Config      ScriptConfig  `json:"config"`
	Status      ScriptStatus  `json:"status"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   *string       `json:"updatedAt,omitempty"`
}

// CreateScriptParams are the fields accepted when creating a script.
type CreateScriptParams struct {
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Code        string         `json:"code"`
	Runtime     *ScriptRuntime `json:"runtime,omitempty"`
	Config      *ScriptConfig  `json:"config,omitempty"`
}

// UpdateScriptParams are the fields accepted when updating a script.
type UpdateScriptParams struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Code        *string       `json:"code,omitempty"`
	Config      *ScriptConfig `json:"config,omitempty"`
}

// InvokeScriptParams identify the script to run and the payload passed to
// it.
type InvokeScriptParams struct {
	ScriptID string `json:"scriptId"`
	Payload  any    `json:"payload,omitempty"`
}

// ScriptInvocationResult is the outcome of one remote execution. It is
// ephemeral: the server does not persist it and the SDK does not either.
type ScriptInvocationResult struct {
	Success  bool     `json:"success"`
	Result   any      `json:"result,omitempty"`
	Logs     *string  `json:"logs,omitempty"`
	Error    *string  `json:"error,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// ScriptService exposes the /scripts endpoints.
type ScriptService struct {
	client *Client
}

// Create registers a new script.
func (s *ScriptService) Create(ctx context.Context, params CreateScriptParams) (*Script, error) {
	var out Script
	if err := s.client.do(ctx, "POST", "/scripts", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a script by ID.
func (s *ScriptService) Get(ctx context.Context, id string) (*Script, error) {
	var out Script
	if err := s.client.do(ctx, "GET", "/scripts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns all scripts.
func (s *ScriptService) List(ctx context.Context) ([]Script, error) {
	var out []Script
	if err := s.client.do(ctx, "GET", "/scripts", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies partial updates to a script.
func (s *ScriptService) Update(ctx context.Context, id string, params UpdateScriptParams) (*Script, error) {
	var out Script
	if err := s.client.do(ctx, "PATCH", "/scripts/"+id, params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a script.
func (s *ScriptService) Delete(ctx context.Context, id string) (map[string]bool, error) {
	var out map[string]bool
	if err := s.client.do(ctx, "DELETE", "/scripts/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Deploy transitions a script out of draft. The resulting status
// (deployed or failed) is reported by subsequent Get calls.
func (s *ScriptService) Deploy(ctx context.Context, id string) (map[string]bool, error) {
	var out map[string]bool
	if err := s.client.do(ctx, "POST", "/scripts/"+id+"/deploy", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type invokeScriptBody struct {
	Payload any `json:"payload"`
}

// Invoke executes a deployed script remotely and returns its result.
func (s *ScriptService) Invoke(ctx context.Context, params InvokeScriptParams) (*ScriptInvocationResult, error) {
	var out ScriptInvocationResult
	body := invokeScriptBody{Payload: params.Payload}
	if err := s.client.do(ctx, "POST", "/scripts/"+params.ScriptID+"/invoke", body, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
