package answers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

var (
	// ErrProviderNotImplemented is returned for the declared but unbuilt
	// wikipedia provider. It must fail loudly, never silently empty.
	ErrProviderNotImplemented = errors.New("wikipedia search provider not yet implemented")

	ErrUnknownProvider = errors.New("unknown search provider")
)

// CategorySource resolves categories and bundled offline word lists.
type CategorySource interface {
	CategoryBySearchWord(searchWord string) (*domain.Category, error)
	OfflineWords(searchWord, letter string) ([]string, error)
}

// MemberSource fetches category members from an external service.
type MemberSource interface {
	CategoryMembers(ctx context.Context, category string) ([]string, error)
}

// Checker decides whether a submitted term is a valid answer for a category
// and round letter. External-fetch failures degrade to an empty candidate
// list; an unknown category or provider is a caller error and propagates.
type Checker struct {
	catalog CategorySource
	petscan MemberSource
	offline atomic.Bool
	logger  zerolog.Logger
}

func NewChecker(catalog CategorySource, petscan MemberSource, offlineMode bool, logger zerolog.Logger) *Checker {
	c := &Checker{
		catalog: catalog,
		petscan: petscan,
		logger:  logger,
	}
	c.offline.Store(offlineMode)
	return c
}

// SetOfflineMode switches petscan categories to the bundled word lists.
func (c *Checker) SetOfflineMode(enabled bool) {
	c.offline.Store(enabled)
}

// CheckAnswer resolves the category by searchWord, gathers the candidate
// answers for the round letter, and reports whether term is among them plus
// a few alternatives for player feedback.
func (c *Checker) CheckAnswer(ctx context.Context, searchWord, letter, term string) (*domain.CheckAnswerResult, error) {
	category, err := c.catalog.CategoryBySearchWord(searchWord)
	if err != nil {
		return nil, err
	}

	var candidates []string
	switch category.SearchProvider {
	case domain.ProviderPetScan:
		if c.offline.Load() {
			candidates = c.offlineWords(category.SearchWord, letter)
			break
		}
		candidates, err = c.petscan.CategoryMembers(ctx, category.SearchWord)
		if err != nil {
			c.logger.Warn().Err(err).Str("category", category.SearchWord).Msg("petscan fetch failed, degrading to empty candidate list")
			candidates = nil
		}
	case domain.ProviderOffline:
		candidates = c.offlineWords(category.SearchWord, letter)
	case domain.ProviderWikipedia:
		return nil, ErrProviderNotImplemented
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, category.SearchProvider)
	}

	result := buildResult(candidates, letter, term, category)

	c.logger.Debug().
		Str("category", category.SearchWord).
		Str("letter", letter).
		Str("term", term).
		Bool("found", result.Found).
		Int("other", len(result.Other)).
		Msg("answer checked")

	return result, nil
}

func (c *Checker) offlineWords(searchWord, letter string) []string {
	words, err := c.catalog.OfflineWords(searchWord, letter)
	if err != nil {
		c.logger.Warn().Err(err).Str("category", searchWord).Msg("offline answer lookup failed, degrading to empty candidate list")
		return nil
	}
	return words
}

// buildResult filters the candidates down to the round letter, including any
// category-specific additional answers, and checks the term for an exact
// match. Other carries up to MaxSuggestions alternatives excluding the term.
func buildResult(candidates []string, letter, term string, category *domain.Category) *domain.CheckAnswerResult {
	items := candidates
	if len(category.AdditionalData) > 0 {
		items = append(append([]string{}, candidates...), category.AdditionalData...)
	}

	prefix := strings.ToUpper(letter)
	matching := make([]string, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(strings.ToUpper(item), prefix) {
			matching = append(matching, item)
		}
	}

	found := false
	other := make([]string, 0, constants.MaxSuggestions)
	for _, item := range matching {
		if item == term {
			found = true
			continue
		}
		if len(other) < constants.MaxSuggestions {
			other = append(other, item)
		}
	}

	return &domain.CheckAnswerResult{Found: found, Other: other}
}
