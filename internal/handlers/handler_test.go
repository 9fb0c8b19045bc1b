// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared fakes and helpers for handler tests. The
// handlers depend on interfaces only, so nothing here needs PostgreSQL,
// Valkey or a real AI provider.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"promptdeck/internal/ads"
	"promptdeck/internal/ai"
	"promptdeck/internal/middleware"
	"promptdeck/internal/models"
	"promptdeck/internal/pinterest"
	"promptdeck/internal/store"
)

// mockAIProvider implements ai.Provider and ai.ImageGenerator.
type mockAIProvider struct {
	name     string
	model    string
	response string
	err      error
	image    *ai.ImageResult

	mu       sync.Mutex
	calls    int
	lastUser string
	lastImg  ai.ImageRequest
}

func (m *mockAIProvider) Name() string  { return m.name }
func (m *mockAIProvider) Model() string { return m.model }

func (m *mockAIProvider) Generate(_ context.Context, _, user string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastUser = user
	return m.response, m.err
}

func (m *mockAIProvider) GenerateImage(_ context.Context, req ai.ImageRequest) (*ai.ImageResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastImg = req
	if m.err != nil {
		return nil, m.err
	}
	return m.image, nil
}

// fakeProviders implements Providers. Resolve records the override and
// returns the provider registered under its name.
type fakeProviders struct {
	active     string
	providers  map[string]*mockAIProvider
	moderation *ai.ModerationResult
	modErr     error
	overrides  []ai.Override
}

func (f *fakeProviders) Resolve(o ai.Override) (ai.Provider, error) {
	f.overrides = append(f.overrides, o)
	p, ok := f.providers[o.Provider]
	if !ok {
		return nil, ai.ErrNoProvider
	}
	return p, nil
}

func (f *fakeProviders) ImageGenerator() (ai.ImageGenerator, bool) {
	p, ok := f.providers[ai.OpenAI]
	return p, ok
}

func (f *fakeProviders) CheckPrompt(context.Context, string) (*ai.ModerationResult, error) {
	if f.modErr != nil {
		return nil, f.modErr
	}
	if f.moderation != nil {
		return f.moderation, nil
	}
	return &ai.ModerationResult{Safe: true}, nil
}

func (f *fakeProviders) ActiveName() string { return f.active }

func (f *fakeProviders) Available() []string {
	names := make([]string, 0, len(f.providers))
	for n := range f.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// fakeHistory is an in-memory HistoryRepo.
type fakeHistory struct {
	mu      sync.Mutex
	entries []models.PromptHistoryEntry
	addErr  error
}

func (f *fakeHistory) Add(_ context.Context, e *models.PromptHistoryEntry) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uuid.New()
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	f.entries = append([]models.PromptHistoryEntry{*e}, f.entries...)
	return nil
}

func (f *fakeHistory) List(_ context.Context, ws uuid.UUID) ([]models.PromptHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PromptHistoryEntry{}
	for _, e := range f.entries {
		if e.WorkspaceID == ws {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistory) Get(_ context.Context, ws, id uuid.UUID) (*models.PromptHistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id && e.WorkspaceID == ws {
			cp := e
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeHistory) Delete(_ context.Context, ws, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id && e.WorkspaceID == ws {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeHistory) Clear(_ context.Context, ws uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.WorkspaceID != ws {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

// fakeImages implements both ImageRepo and Gallery, deduplicating by URL.
type fakeImages struct {
	mu     sync.Mutex
	images []models.GeneratedImage
}

func (f *fakeImages) has(ws uuid.UUID, url string) bool {
	for _, g := range f.images {
		if g.WorkspaceID == ws && g.URL == url {
			return true
		}
	}
	return false
}

func (f *fakeImages) Save(_ context.Context, ws uuid.UUID, img *models.GeneratedImage) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.has(ws, img.URL) {
		return false, nil
	}
	img.ID = uuid.New()
	img.WorkspaceID = ws
	img.Timestamp = time.Now()
	f.images = append(f.images, *img)
	return true, nil
}

func (f *fakeImages) Import(_ context.Context, ws uuid.UUID, images []models.GeneratedImage) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	added := 0
	for _, g := range images {
		if f.has(ws, g.URL) {
			continue
		}
		g.ID = uuid.New()
		g.WorkspaceID = ws
		f.images = append(f.images, g)
		added++
	}
	return added, nil
}

func (f *fakeImages) List(_ context.Context, ws uuid.UUID) ([]models.GeneratedImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.GeneratedImage{}
	for _, g := range f.images {
		if g.WorkspaceID == ws {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeImages) Delete(_ context.Context, ws, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.images {
		if g.ID == id && g.WorkspaceID == ws {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeSettings is an in-memory SettingsRepo.
type fakeSettings struct {
	mu   sync.Mutex
	cfgs map[uuid.UUID]models.AIConfig
}

func (f *fakeSettings) AIConfig(_ context.Context, ws uuid.UUID) (models.AIConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfgs[ws], nil
}

func (f *fakeSettings) SetAIConfig(_ context.Context, ws uuid.UUID, cfg models.AIConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfgs[ws] = cfg
	return nil
}

// fakePins implements PinResolver.
type fakePins struct {
	video *pinterest.Video
	err   error
}

func (f *fakePins) Resolve(_ context.Context, pinURL string) (*pinterest.Video, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := *f.video
	v.PinURL = pinURL
	return &v, nil
}

// testEnv bundles an API with its fakes.
type testEnv struct {
	api       *API
	ws        uuid.UUID
	history   *fakeHistory
	images    *fakeImages
	settings  *fakeSettings
	providers *fakeProviders
	openai    *mockAIProvider
	pins      *fakePins
	sets      map[uuid.UUID]*ads.MemorySet
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	openai := &mockAIProvider{
		name:  ai.OpenAI,
		model: ai.DefaultOpenAIModel,
		image: &ai.ImageResult{URL: "https://img.test/generated.png", RevisedPrompt: "revised"},
	}
	env := &testEnv{
		ws:       uuid.New(),
		history:  &fakeHistory{},
		images:   &fakeImages{},
		settings: &fakeSettings{cfgs: map[uuid.UUID]models.AIConfig{}},
		providers: &fakeProviders{
			active:    ai.OpenAI,
			providers: map[string]*mockAIProvider{ai.OpenAI: openai},
		},
		openai: openai,
		pins:   &fakePins{video: &pinterest.Video{URL: "https://v.pinimg.com/720p/a.mp4"}},
		sets:   map[uuid.UUID]*ads.MemorySet{},
	}

	env.api = New(Deps{
		History:   env.history,
		Images:    env.images,
		Gallery:   env.images,
		Settings:  env.settings,
		Providers: env.providers,
		UsedSets: func(ws uuid.UUID) ads.UsedSet {
			if s, ok := env.sets[ws]; ok {
				return s
			}
			s := ads.NewMemorySet()
			env.sets[ws] = s
			return s
		},
		Pinterest: env.pins,
		SplitMax:  4000,
	})
	return env
}

// do routes a single request to h under pattern, inside the env's
// workspace. body may be nil, a string (sent raw) or any JSON value.
func (e *testEnv) do(t *testing.T, h http.HandlerFunc, method, pattern, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(middleware.WithWorkspace(req.Context(), e.ws))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// decode unmarshals a JSON response body.
func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// errorBody returns the "error" field of a JSON error response.
func errorBody(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	decode(t, rr, &body)
	msg, _ := body["error"].(string)
	return msg
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, want, strings.TrimSpace(rr.Body.String()))
	}
}
