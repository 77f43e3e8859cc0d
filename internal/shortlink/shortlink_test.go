package shortlink

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

func newSeededGenerator(t *testing.T, minLength, maxLength int) *Generator {
	t.Helper()
	return NewGenerator(minLength, maxLength, rand.NewPCG(1, 2))
}

func TestToken_LengthBounds(t *testing.T) {
	gen := newSeededGenerator(t, 15, 40)

	for i := 0; i < 1000; i++ {
		token := gen.Token()
		if len(token) < 15 || len(token) > 40 {
			t.Fatalf("Token() length = %d, want within [15, 40]", len(token))
		}
	}
}

func TestToken_Charset(t *testing.T) {
	gen := newSeededGenerator(t, 15, 40)

	for i := 0; i < 100; i++ {
		token := gen.Token()
		for _, c := range token {
			if !strings.ContainsRune(Alphabet, c) {
				t.Fatalf("Token() = %q, contains %q outside the alphabet", token, c)
			}
		}
	}
}

func TestToken_Deterministic(t *testing.T) {
	first := NewGenerator(15, 40, rand.NewPCG(7, 7))
	second := NewGenerator(15, 40, rand.NewPCG(7, 7))

	for i := 0; i < 50; i++ {
		a, b := first.Token(), second.Token()
		if a != b {
			t.Fatalf("seeded generators diverged at call %d: %q != %q", i, a, b)
		}
	}
}

func TestToken_FixedLength(t *testing.T) {
	gen := newSeededGenerator(t, 20, 20)

	for i := 0; i < 100; i++ {
		if got := gen.Token(); len(got) != 20 {
			t.Fatalf("Token() length = %d, want 20", len(got))
		}
	}
}

func TestNewCustomGenerator_Bounds(t *testing.T) {
	gen := NewCustomGenerator(0, -5, "ab", rand.NewPCG(1, 1))

	for i := 0; i < 20; i++ {
		token := gen.Token()
		if len(token) != 1 {
			t.Fatalf("Token() length = %d, want 1 after bound clamping", len(token))
		}
		if token != "a" && token != "b" {
			t.Fatalf("Token() = %q, want a character from the custom alphabet", token)
		}
	}
}

// memRecipeStore is an in-memory RecipeStore with a configurable number
// of forced collisions.
type memRecipeStore struct {
	tokens     map[int64]string
	byToken    map[string]int64
	collisions int
	setCalls   int
}

func newMemRecipeStore() *memRecipeStore {
	return &memRecipeStore{
		tokens:  make(map[int64]string),
		byToken: make(map[string]int64),
	}
}

func (m *memRecipeStore) RecipeShortLink(_ context.Context, recipeID int64) (string, error) {
	return m.tokens[recipeID], nil
}

func (m *memRecipeStore) SetRecipeShortLink(_ context.Context, recipeID int64, token string) error {
	m.setCalls++
	if m.collisions > 0 {
		m.collisions--
		return fmt.Errorf("persisting: %w", ErrTokenTaken)
	}
	if _, taken := m.byToken[token]; taken {
		return ErrTokenTaken
	}
	if old, ok := m.tokens[recipeID]; ok {
		delete(m.byToken, old)
	}
	m.tokens[recipeID] = token
	m.byToken[token] = recipeID
	return nil
}

func (m *memRecipeStore) RecipeIDByShortLink(_ context.Context, token string) (int64, error) {
	id, ok := m.byToken[token]
	if !ok {
		return 0, ErrNotFound
	}
	return id, nil
}

type memLinkStore struct {
	urls map[string]string
}

func newMemLinkStore() *memLinkStore {
	return &memLinkStore{urls: make(map[string]string)}
}

func (m *memLinkStore) CreateLink(_ context.Context, token, originalURL string) error {
	if _, taken := m.urls[token]; taken {
		return ErrTokenTaken
	}
	m.urls[token] = originalURL
	return nil
}

func (m *memLinkStore) OriginalURL(_ context.Context, token string) (string, error) {
	url, ok := m.urls[token]
	if !ok {
		return "", ErrNotFound
	}
	return url, nil
}

func newTestService(t *testing.T, recipes *memRecipeStore, links *memLinkStore) *Service {
	t.Helper()
	gen := NewGenerator(15, 40, rand.NewPCG(3, 3))
	return NewService(gen, "https://foodgram.example", recipes, links)
}

func TestAssignRecipe_Idempotent(t *testing.T) {
	store := newMemRecipeStore()
	svc := newTestService(t, store, newMemLinkStore())
	ctx := context.Background()

	first, err := svc.AssignRecipe(ctx, 42)
	if err != nil {
		t.Fatalf("AssignRecipe() error = %v", err)
	}
	second, err := svc.AssignRecipe(ctx, 42)
	if err != nil {
		t.Fatalf("AssignRecipe() second call error = %v", err)
	}
	if first != second {
		t.Errorf("AssignRecipe() returned %q then %q, want the same token", first, second)
	}
	if store.setCalls != 1 {
		t.Errorf("SetRecipeShortLink called %d times, want 1", store.setCalls)
	}
}

func TestAssignRecipe_RetriesOnCollision(t *testing.T) {
	store := newMemRecipeStore()
	store.collisions = 3
	svc := newTestService(t, store, newMemLinkStore())

	token, err := svc.AssignRecipe(context.Background(), 1)
	if err != nil {
		t.Fatalf("AssignRecipe() error = %v", err)
	}
	if token == "" {
		t.Fatal("AssignRecipe() returned empty token")
	}
	if store.setCalls != 4 {
		t.Errorf("SetRecipeShortLink called %d times, want 4 (3 collisions + 1 success)", store.setCalls)
	}
}

func TestAssignRecipe_TokenSpaceExhausted(t *testing.T) {
	store := newMemRecipeStore()
	store.collisions = maxAttempts
	svc := newTestService(t, store, newMemLinkStore())

	_, err := svc.AssignRecipe(context.Background(), 1)
	if !errors.Is(err, ErrTokenSpaceExhausted) {
		t.Fatalf("AssignRecipe() error = %v, want ErrTokenSpaceExhausted", err)
	}
	if store.setCalls != maxAttempts {
		t.Errorf("SetRecipeShortLink called %d times, want %d", store.setCalls, maxAttempts)
	}
}

func TestAssignRecipe_StoreError(t *testing.T) {
	store := newMemRecipeStore()
	svc := newTestService(t, store, newMemLinkStore())

	// A non-collision store error must not be retried.
	boom := errors.New("connection lost")
	failing := &failingRecipeStore{err: boom}
	failingSvc := NewService(svc.gen, "https://foodgram.example", failing, newMemLinkStore())

	_, err := failingSvc.AssignRecipe(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("AssignRecipe() error = %v, want wrapped %v", err, boom)
	}
	if failing.setCalls != 1 {
		t.Errorf("SetRecipeShortLink called %d times, want 1", failing.setCalls)
	}
}

type failingRecipeStore struct {
	err      error
	setCalls int
}

func (f *failingRecipeStore) RecipeShortLink(context.Context, int64) (string, error) {
	return "", nil
}

func (f *failingRecipeStore) SetRecipeShortLink(context.Context, int64, string) error {
	f.setCalls++
	return f.err
}

func (f *failingRecipeStore) RecipeIDByShortLink(context.Context, string) (int64, error) {
	return 0, ErrNotFound
}

func TestRegenerateRecipe_ReplacesToken(t *testing.T) {
	store := newMemRecipeStore()
	svc := newTestService(t, store, newMemLinkStore())
	ctx := context.Background()

	first, err := svc.AssignRecipe(ctx, 42)
	if err != nil {
		t.Fatalf("AssignRecipe() error = %v", err)
	}
	second, err := svc.RegenerateRecipe(ctx, 42)
	if err != nil {
		t.Fatalf("RegenerateRecipe() error = %v", err)
	}
	if first == second {
		t.Errorf("RegenerateRecipe() returned the old token %q", first)
	}

	id, err := svc.ResolveRecipe(ctx, second)
	if err != nil {
		t.Fatalf("ResolveRecipe() error = %v", err)
	}
	if id != 42 {
		t.Errorf("ResolveRecipe() = %d, want 42", id)
	}
}

func TestResolveRecipe_AfterAssign(t *testing.T) {
	store := newMemRecipeStore()
	svc := newTestService(t, store, newMemLinkStore())
	ctx := context.Background()

	token, err := svc.AssignRecipe(ctx, 7)
	if err != nil {
		t.Fatalf("AssignRecipe() error = %v", err)
	}

	id, err := svc.ResolveRecipe(ctx, token)
	if err != nil {
		t.Fatalf("ResolveRecipe() error = %v", err)
	}
	if id != 7 {
		t.Errorf("ResolveRecipe() = %d, want 7", id)
	}
}

func TestResolveRecipe_UnknownToken(t *testing.T) {
	svc := newTestService(t, newMemRecipeStore(), newMemLinkStore())

	_, err := svc.ResolveRecipe(context.Background(), "nosuchtoken12345")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("ResolveRecipe() error = %v, want ErrNotFound", err)
	}
}

func TestResolveRecipe_ExactMatchOnly(t *testing.T) {
	store := newMemRecipeStore()
	svc := newTestService(t, store, newMemLinkStore())
	ctx := context.Background()

	token, err := svc.AssignRecipe(ctx, 7)
	if err != nil {
		t.Fatalf("AssignRecipe() error = %v", err)
	}

	// Case and prefix variants must not resolve.
	variants := []string{
		strings.ToUpper(token),
		strings.ToLower(token),
		token[:len(token)-1],
		token + "x",
	}
	for _, v := range variants {
		if v == token {
			continue
		}
		if _, err := svc.ResolveRecipe(ctx, v); !errors.Is(err, ErrNotFound) {
			t.Errorf("ResolveRecipe(%q) error = %v, want ErrNotFound", v, err)
		}
	}
}

func TestShortenURL_RoundTrip(t *testing.T) {
	links := newMemLinkStore()
	svc := newTestService(t, newMemRecipeStore(), links)
	ctx := context.Background()

	original := "https://example.com/some/long/path?with=query"
	token, err := svc.ShortenURL(ctx, original)
	if err != nil {
		t.Fatalf("ShortenURL() error = %v", err)
	}

	resolved, err := svc.ResolveURL(ctx, token)
	if err != nil {
		t.Fatalf("ResolveURL() error = %v", err)
	}
	if resolved != original {
		t.Errorf("ResolveURL() = %q, want %q", resolved, original)
	}
}

func TestShortURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		token   string
		want    string
	}{
		{
			name:    "plain base",
			baseURL: "https://foodgram.example",
			token:   "Abc123Def456Ghi",
			want:    "https://foodgram.example/s/Abc123Def456Ghi",
		},
		{
			name:    "trailing slash trimmed",
			baseURL: "https://foodgram.example/",
			token:   "Abc123Def456Ghi",
			want:    "https://foodgram.example/s/Abc123Def456Ghi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(15, 40, rand.NewPCG(1, 1))
			svc := NewService(gen, tt.baseURL, newMemRecipeStore(), newMemLinkStore())
			if got := svc.ShortURL(tt.token); got != tt.want {
				t.Errorf("ShortURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
