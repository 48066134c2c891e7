// Package mirratest provides an in-process fake of the Mirra API for
// tests and offline development. Every handler answers in the standard
// {success, data, error} envelope and enforces the X-API-Key header, so a
// Client pointed at it exercises the same wire contract as production.
//
// State lives in memory and is scoped to one Server; nothing persists.
package mirratest

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mirra "github.com/mirra-ai/mirra-go"
)

// Server is a fake Mirra API backed by in-memory maps. Safe for
// concurrent use.
type Server struct {
	apiKey string
	router *chi.Mux

	mu        sync.Mutex
	agents    map[string]*mirra.Agent
	scripts   map[string]*mirra.Script
	memories  map[string]*mirra.MemoryEntity
	resources map[string]*mirra.Resource
	templates map[string]*mirra.Template
	listings  []mirra.MarketplaceItem
}

// New creates a Server that accepts the given API key.
func New(apiKey string) *Server {
	s := &Server{
		apiKey:    apiKey,
		agents:    make(map[string]*mirra.Agent),
		scripts:   make(map[string]*mirra.Script),
		memories:  make(map[string]*mirra.MemoryEntity),
		resources: make(map[string]*mirra.Resource),
		templates: make(map[string]*mirra.Template),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the HTTP handler; mount it with httptest.NewServer or
// http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.auth)

	r.Route("/memory", func(r chi.Router) {
		r.Post("/", s.createMemory)
		r.Post("/search", s.searchMemory)
		r.Post("/query", s.queryMemory)
		r.Post("/findOne", s.findOneMemory)
		r.Post("/update", s.updateMemory)
		r.Post("/delete", s.deleteMemory)
	})

	r.Route("/ai", func(r chi.Router) {
		r.Post("/chat", s.chat)
		r.Post("/decide", s.decide)
		r.Post("/batchChat", s.batchChat)
	})

	r.Route("/agents", func(r chi.Router) {
		r.Post("/", s.createAgent)
		r.Get("/", s.listAgents)
		r.Get("/{id}", s.getAgent)
		r.Patch("/{id}", s.updateAgent)
		r.Delete("/{id}", s.deleteAgent)
	})

	r.Route("/scripts", func(r chi.Router) {
		r.Post("/", s.createScript)
		r.Get("/", s.listScripts)
		r.Get("/{id}", s.getScript)
		r.Patch("/{id}", s.updateScript)
		r.Delete("/{id}", s.deleteScript)
		r.Post("/{id}/deploy", s.deployScript)
		r.Post("/{id}/invoke", s.invokeScript)
	})

	r.Route("/resources", func(r chi.Router) {
		r.Get("/", s.listResources)
		r.Get("/{id}", s.getResource)
		r.Post("/call", s.callResource)
	})

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Get("/{id}", s.getTemplate)
		r.Post("/{id}/install", s.installTemplate)
	})

	r.Route("/marketplace", func(r chi.Router) {
		r.Get("/", s.browseMarketplace)
		r.Get("/search", s.searchMarketplace)
	})

	return r
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.apiKey {
			writeErr(w, http.StatusUnauthorized, "unauthorized", "invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- envelope helpers ---

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *envelopeError `json:"error,omitempty"`
}

type envelopeError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeErr(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{
		Success: false,
		Error:   &envelopeError{Message: msg, Code: code},
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return false
	}
	return true
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// --- seeding ---

// SeedResource registers a resource for List/Get/Call.
func (s *Server) SeedResource(res mirra.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt == "" {
		res.CreatedAt = now()
	}
	s.resources[res.ID] = &res
}

// SeedTemplate registers a template for List/Get/Install.
func (s *Server) SeedTemplate(tpl mirra.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.CreatedAt == "" {
		tpl.CreatedAt = now()
	}
	s.templates[tpl.ID] = &tpl
}

// SeedMarketplaceItem adds a listing for Browse/Search.
func (s *Server) SeedMarketplaceItem(item mirra.MarketplaceItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.listings = append(s.listings, item)
}

// --- agents ---

func (s *Server) createAgent(w http.ResponseWriter, r *http.Request) {
	var params mirra.CreateAgentParams
	if !decodeBody(w, r, &params) {
		return
	}
	if params.Name == "" || params.Subdomain == "" {
		writeErr(w, http.StatusBadRequest, "validation_error", "name and subdomain are required")
		return
	}

	enabled := true
	if params.Enabled != nil {
		enabled = *params.Enabled
	}
	agent := &mirra.Agent{
		ID:           uuid.NewString(),
		Subdomain:    params.Subdomain,
		Name:         params.Name,
		Description:  params.Description,
		SystemPrompt: params.SystemPrompt,
		Enabled:      enabled,
		Status:       mirra.AgentStatusDraft,
		CreatedAt:    now(),
	}

	s.mu.Lock()
	s.agents[agent.ID] = agent
	s.mu.Unlock()

	writeData(w, http.StatusCreated, agent)
}

func (s *Server) getAgent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	agent, ok := s.agents[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "agent not found")
		return
	}
	writeData(w, http.StatusOK, agent)
}

func (s *Server) listAgents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	agents := make([]*mirra.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		agents = append(agents, a)
	}
	s.mu.Unlock()
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	writeData(w, http.StatusOK, agents)
}

func (s *Server) updateAgent(w http.ResponseWriter, r *http.Request) {
	var params mirra.UpdateAgentParams
	if !decodeBody(w, r, &params) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	agent, ok := s.agents[chi.URLParam(r, "id")]
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "agent not found")
		return
	}
	if params.Name != nil {
		agent.Name = *params.Name
	}
	if params.SystemPrompt != nil {
		agent.SystemPrompt = *params.SystemPrompt
	}
	if params.Description != nil {
		agent.Description = params.Description
	}
	if params.Enabled != nil {
		agent.Enabled = *params.Enabled
	}
	updated := now()
	agent.UpdatedAt = &updated
	writeData(w, http.StatusOK, agent)
}

func (s *Server) deleteAgent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.agents[id]; !ok {
		writeErr(w, http.StatusNotFound, "not_found", "agent not found")
		return
	}
	delete(s.agents, id)
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- scripts ---

func (s *Server) createScript(w http.ResponseWriter, r *http.Request) {
	var params mirra.CreateScriptParams
	if !decodeBody(w, r, &params) {
		return
	}
	if params.Name == "" || params.Code == "" {
		writeErr(w, http.StatusBadRequest, "validation_error", "name and code are required")
		return
	}

	runtime := mirra.RuntimeNodeJS18
	if params.Runtime != nil {
		runtime = *params.Runtime
	}
	script := &mirra.Script{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Description: params.Description,
		Code:        params.Code,
		Runtime:     runtime,
		Status:      mirra.ScriptStatusDraft,
		CreatedAt:   now(),
	}
	if params.Config != nil {
		script.Config = *params.Config
	}

	s.mu.Lock()
	s.scripts[script.ID] = script
	s.mu.Unlock()

	writeData(w, http.StatusCreated, script)
}

func (s *Server) getScript(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	script, ok := s.scripts[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "script not found")
		return
	}
	writeData(w, http.StatusOK, script)
}

func (s *Server) listScripts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	scripts := make([]*mirra.Script, 0, len(s.scripts))
	for _, sc := range s.scripts {
		scripts = append(scripts, sc)
	}
	s.mu.Unlock()
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].ID < scripts[j].ID })
	writeData(w, http.StatusOK, scripts)
}

func (s *Server) updateScript(w http.ResponseWriter, r *http.Request) {
	var params mirra.UpdateScriptParams
	if !decodeBody(w, r, &params) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	script, ok := s.scripts[chi.URLParam(r, "id")]
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "script not found")
		return
	}
	if params.Name != nil {
		script.Name = *params.Name
	}
	if params.Description != nil {
		script.Description = params.Description
	}
	if params.Code != nil {
		script.Code = *params.Code
	}
	if params.Config != nil {
		script.Config = *params.Config
	}
	updated := now()
	script.UpdatedAt = &updated
	writeData(w, http.StatusOK, script)
}

func (s *Server) deleteScript(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "id")
	if _, ok := s.scripts[id]; !ok {
		writeErr(w, http.StatusNotFound, "not_found", "script not found")
		return
	}
	delete(s.scripts, id)
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) deployScript(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	script, ok := s.scripts[chi.URLParam(r, "id")]
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "script not found")
		return
	}
	script.Status = mirra.ScriptStatusDeployed
	updated := now()
	script.UpdatedAt = &updated
	writeData(w, http.StatusOK, map[string]bool{"deployed": true})
}

func (s *Server) invokeScript(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Payload any `json:"payload"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	script, ok := s.scripts[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "script not found")
		return
	}
	if script.Status != mirra.ScriptStatusDeployed {
		writeErr(w, http.StatusConflict, "not_deployed", "script is not deployed")
		return
	}

	logs := "invoked " + script.Name
	duration := 1.0
	writeData(w, http.StatusOK, mirra.ScriptInvocationResult{
		Success:  true,
		Result:   body.Payload,
		Logs:     &logs,
		Duration: &duration,
	})
}

// --- memory ---

func (s *Server) createMemory(w http.ResponseWriter, r *http.Request) {
	var entity mirra.MemoryEntity
	if !decodeBody(w, r, &entity) {
		return
	}
	if entity.Content == "" {
		writeErr(w, http.StatusBadRequest, "validation_error", "content is required")
		return
	}
	entity.ID = uuid.NewString()

	s.mu.Lock()
	s.memories[entity.ID] = &entity
	s.mu.Unlock()

	writeData(w, http.StatusCreated, map[string]string{"id": entity.ID})
}

func (s *Server) searchMemory(w http.ResponseWriter, r *http.Request) {
	var query mirra.MemorySearchQuery
	if !decodeBody(w, r, &query) {
		return
	}

	limit := 10
	if query.Limit != nil && *query.Limit > 0 {
		limit = *query.Limit
	}

	s.mu.Lock()
	results := make([]mirra.MemorySearchResult, 0)
	for _, m := range s.memories {
		score := 0.5
		if strings.Contains(strings.ToLower(m.Content), strings.ToLower(query.Query)) {
			score = 0.9
		}
		if query.Threshold != nil && score < *query.Threshold {
			continue
		}
		results = append(results, mirra.MemorySearchResult{
			ID:       m.ID,
			Content:  m.Content,
			Type:     m.Type,
			Metadata: m.Metadata,
			Score:    score,
		})
	}
	s.mu.Unlock()

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > limit {
		results = results[:limit]
	}
	writeData(w, http.StatusOK, results)
}

func (s *Server) queryMemory(w http.ResponseWriter, r *http.Request) {
	var params mirra.MemoryQueryParams
	if !decodeBody(w, r, &params) {
		return
	}

	limit := 50
	if params.Limit != nil && *params.Limit > 0 {
		limit = *params.Limit
	}

	s.mu.Lock()
	out := make([]mirra.MemoryEntity, 0)
	for _, m := range s.memories {
		if !metadataMatches(m, params.Filters) {
			continue
		}
		out = append(out, *m)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	writeData(w, http.StatusOK, out)
}

func metadataMatches(m *mirra.MemoryEntity, filters map[string]any) bool {
	for k, want := range filters {
		if k == "type" {
			wantType, ok := want.(string)
			if !ok || m.Type != wantType {
				return false
			}
			continue
		}
		got, ok := m.Metadata[k]
		if !ok || got != want {
			return false
		}
	}
	return true
}

func (s *Server) findOneMemory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	m, ok := s.memories[body.ID]
	s.mu.Unlock()
	if !ok {
		// Missing memories are not an error; data is simply null.
		writeData(w, http.StatusOK, nil)
		return
	}
	writeData(w, http.StatusOK, m)
}

func (s *Server) updateMemory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID       string         `json:"id"`
		Content  *string        `json:"content"`
		Metadata map[string]any `json:"metadata"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memories[body.ID]
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "memory not found")
		return
	}
	if body.Content != nil {
		m.Content = *body.Content
	}
	if body.Metadata != nil {
		m.Metadata = body.Metadata
	}
	writeData(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) deleteMemory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memories[body.ID]; !ok {
		writeErr(w, http.StatusNotFound, "not_found", "memory not found")
		return
	}
	delete(s.memories, body.ID)
	writeData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- ai ---

const mockModel = "mirra-mock-1"

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req mirra.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Messages) == 0 {
		writeErr(w, http.StatusBadRequest, "validation_error", "messages are required")
		return
	}
	writeData(w, http.StatusOK, chatReply(req))
}

func chatReply(req mirra.ChatRequest) mirra.ChatResponse {
	last := req.Messages[len(req.Messages)-1]
	model := mockModel
	if req.Model != nil {
		model = *req.Model
	}
	inputTokens := 0
	for _, m := range req.Messages {
		inputTokens += len(strings.Fields(m.Content))
	}
	content := "echo: " + last.Content
	return mirra.ChatResponse{
		Content: content,
		Model:   model,
		Usage: mirra.TokenUsage{
			InputTokens:  inputTokens,
			OutputTokens: len(strings.Fields(content)),
		},
	}
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	var req mirra.DecideRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Options) == 0 {
		writeErr(w, http.StatusBadRequest, "validation_error", "options are required")
		return
	}
	writeData(w, http.StatusOK, mirra.DecideResponse{
		SelectedOption: req.Options[0].ID,
		Reasoning:      "selected the first available option",
	})
}

func (s *Server) batchChat(w http.ResponseWriter, r *http.Request) {
	var req mirra.BatchChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	responses := make([]mirra.ChatResponse, 0, len(req.Requests))
	for _, cr := range req.Requests {
		if len(cr.Messages) == 0 {
			responses = append(responses, mirra.ChatResponse{Model: mockModel})
			continue
		}
		responses = append(responses, chatReply(cr))
	}
	writeData(w, http.StatusOK, responses)
}

// --- resources ---

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]*mirra.Resource, 0, len(s.resources))
	for _, res := range s.resources {
		out = append(out, res)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeData(w, http.StatusOK, out)
}

func (s *Server) getResource(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res, ok := s.resources[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	writeData(w, http.StatusOK, res)
}

func (s *Server) callResource(w http.ResponseWriter, r *http.Request) {
	var params mirra.CallResourceParams
	if !decodeBody(w, r, &params) {
		return
	}

	s.mu.Lock()
	res, ok := s.resources[params.ResourceID]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "resource not found")
		return
	}
	if res.Status != mirra.ResourceStatusActive {
		writeErr(w, http.StatusConflict, "inactive", "resource is inactive")
		return
	}

	// Echo the call back; resource semantics are server-defined.
	writeData(w, http.StatusOK, map[string]any{
		"resourceId": params.ResourceID,
		"method":     params.Method,
		"params":     params.Params,
	})
}

// --- templates ---

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]*mirra.Template, 0, len(s.templates))
	for _, tpl := range s.templates {
		out = append(out, tpl)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	writeData(w, http.StatusOK, out)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	tpl, ok := s.templates[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "template not found")
		return
	}
	writeData(w, http.StatusOK, tpl)
}

func (s *Server) installTemplate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	_, ok := s.templates[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "not_found", "template not found")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"installed": true})
}

// --- marketplace ---

func (s *Server) browseMarketplace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	items := make([]mirra.MarketplaceItem, len(s.listings))
	copy(items, s.listings)
	s.mu.Unlock()

	out := make([]mirra.MarketplaceItem, 0, len(items))
	for _, item := range items {
		if t := q.Get("type"); t != "" && string(item.Type) != t {
			continue
		}
		if search := q.Get("search"); search != "" && !itemMatches(item, search) {
			continue
		}
		out = append(out, item)
	}

	if offset := intParam(q.Get("offset")); offset > 0 {
		if offset >= len(out) {
			out = nil
		} else {
			out = out[offset:]
		}
	}
	if limit := intParam(q.Get("limit")); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeData(w, http.StatusOK, out)
}

func (s *Server) searchMarketplace(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	s.mu.Lock()
	items := make([]mirra.MarketplaceItem, len(s.listings))
	copy(items, s.listings)
	s.mu.Unlock()

	out := make([]mirra.MarketplaceItem, 0)
	for _, item := range items {
		if itemMatches(item, query) {
			out = append(out, item)
		}
	}
	writeData(w, http.StatusOK, out)
}

func itemMatches(item mirra.MarketplaceItem, query string) bool {
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Name), query) {
		return true
	}
	return item.Description != nil && strings.Contains(strings.ToLower(*item.Description), query)
}

func intParam(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
