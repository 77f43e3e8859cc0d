// Package shortlink generates and resolves the random tokens behind
// recipe short links and the generic URL shortener.
package shortlink

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Alphabet is the default token alphabet. Tokens aim for collision
// avoidance, not unguessability.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxAttempts bounds the collision-retry loop. With the default alphabet
// and lengths the space is effectively inexhaustible, so hitting the cap
// indicates a misconfigured store or generator.
const maxAttempts = 100

var (
	ErrNotFound            = errors.New("short link not found")
	ErrTokenTaken          = errors.New("token already taken")
	ErrTokenSpaceExhausted = errors.New("token space exhausted")
)

// Generator produces random tokens with a length drawn uniformly from
// [minLength, maxLength]. The random source is injected so tests can
// seed it deterministically.
type Generator struct {
	minLength int
	maxLength int
	alphabet  string
	rand      *rand.Rand
}

func NewGenerator(minLength, maxLength int, src rand.Source) *Generator {
	return NewCustomGenerator(minLength, maxLength, Alphabet, src)
}

func NewCustomGenerator(minLength, maxLength int, alphabet string, src rand.Source) *Generator {
	if minLength < 1 {
		minLength = 1
	}
	if maxLength < minLength {
		maxLength = minLength
	}
	if alphabet == "" {
		alphabet = Alphabet
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{
		minLength: minLength,
		maxLength: maxLength,
		alphabet:  alphabet,
		rand:      rand.New(src),
	}
}

// Token returns a fresh random token. Uniqueness is not checked here;
// the store's unique constraint is the authority.
func (g *Generator) Token() string {
	length := g.minLength + g.rand.IntN(g.maxLength-g.minLength+1)
	b := make([]byte, length)
	for i := range b {
		b[i] = g.alphabet[g.rand.IntN(len(g.alphabet))]
	}
	return string(b)
}

// RecipeStore persists recipe short-link tokens. Implementations report
// a collision with an error matching ErrTokenTaken and a missing record
// with ErrNotFound.
type RecipeStore interface {
	RecipeShortLink(ctx context.Context, recipeID int64) (string, error)
	SetRecipeShortLink(ctx context.Context, recipeID int64, token string) error
	RecipeIDByShortLink(ctx context.Context, token string) (int64, error)
}

// LinkStore persists generic URL mappings under the same error contract
// as RecipeStore.
type LinkStore interface {
	CreateLink(ctx context.Context, token, originalURL string) error
	OriginalURL(ctx context.Context, token string) (string, error)
}

type Service struct {
	gen     *Generator
	baseURL string
	recipes RecipeStore
	links   LinkStore
}

func NewService(gen *Generator, baseURL string, recipes RecipeStore, links LinkStore) *Service {
	return &Service{
		gen:     gen,
		baseURL: strings.TrimRight(baseURL, "/"),
		recipes: recipes,
		links:   links,
	}
}

// AssignRecipe returns the recipe's token, generating and persisting one
// if the recipe has none. Calling it twice returns the same token.
func (s *Service) AssignRecipe(ctx context.Context, recipeID int64) (string, error) {
	existing, err := s.recipes.RecipeShortLink(ctx, recipeID)
	if err != nil {
		return "", fmt.Errorf("reading recipe short link: %w", err)
	}
	if existing != "" {
		return existing, nil
	}
	return s.assign(ctx, func(token string) error {
		return s.recipes.SetRecipeShortLink(ctx, recipeID, token)
	})
}

// RegenerateRecipe replaces the recipe's token with a fresh one.
func (s *Service) RegenerateRecipe(ctx context.Context, recipeID int64) (string, error) {
	return s.assign(ctx, func(token string) error {
		return s.recipes.SetRecipeShortLink(ctx, recipeID, token)
	})
}

// ResolveRecipe looks up a recipe by its exact token.
func (s *Service) ResolveRecipe(ctx context.Context, token string) (int64, error) {
	return s.recipes.RecipeIDByShortLink(ctx, token)
}

// ShortenURL creates a token for an arbitrary URL and returns it.
func (s *Service) ShortenURL(ctx context.Context, originalURL string) (string, error) {
	return s.assign(ctx, func(token string) error {
		return s.links.CreateLink(ctx, token, originalURL)
	})
}

// ResolveURL returns the original URL behind a token.
func (s *Service) ResolveURL(ctx context.Context, token string) (string, error) {
	return s.links.OriginalURL(ctx, token)
}

// ShortURL builds the absolute short URL for a token.
func (s *Service) ShortURL(token string) string {
	return fmt.Sprintf("%s/s/%s", s.baseURL, token)
}

// assign retries generation until the store accepts a token. The store's
// uniqueness rejection is the recovery signal; there is no pre-check, so
// concurrent assignments cannot race past each other.
func (s *Service) assign(ctx context.Context, persist func(token string) error) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		token := s.gen.Token()
		err := persist(token)
		if errors.Is(err, ErrTokenTaken) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("persisting token: %w", err)
		}
		return token, nil
	}
	return "", ErrTokenSpaceExhausted
}
