package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"riddle-rush/internal/config"
	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

//go:embed data/*.json
var embedData embed.FS

const (
	categoriesFile     = "categories.json"
	offlineAnswersFile = "offline_answers.json"
)

// ErrCategoryNotFound is returned for lookups of a searchWord or ID no
// category carries. This is a caller error and propagates loudly.
var ErrCategoryNotFound = errors.New("category not found")

// OfflineAnswers maps category searchWord -> lowercase letter -> words.
type OfflineAnswers map[string]map[string][]string

// Catalog serves the category list and the bundled offline answer lists.
// Data ships embedded in the binary; a configured data dir overrides it,
// letting deployments swap word lists without a rebuild. Loads are cached
// for a fixed TTL so repeated answer checks do not re-read or re-parse.
type Catalog struct {
	dataDir string
	ttl     time.Duration
	logger  zerolog.Logger

	mu           sync.Mutex
	categories   []domain.Category
	categoriesAt time.Time
	answers      OfflineAnswers
	answersAt    time.Time

	now func() time.Time
}

func New(cfg *config.Config, logger zerolog.Logger) *Catalog {
	return &Catalog{
		dataDir: cfg.DataDir,
		ttl:     constants.CategoryCacheTTL,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *Catalog) readFile(name string) ([]byte, error) {
	if c.dataDir != "" {
		raw, err := os.ReadFile(filepath.Join(c.dataDir, name))
		if err == nil {
			return raw, nil
		}
		c.logger.Warn().Err(err).Str("file", name).Msg("data dir override unreadable, falling back to embedded data")
	}
	return embedData.ReadFile("data/" + name)
}

// Categories returns the full category list, re-reading it at most once per
// cache TTL.
func (c *Catalog) Categories() ([]domain.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.categories != nil && c.now().Sub(c.categoriesAt) < c.ttl {
		return c.categories, nil
	}

	raw, err := c.readFile(categoriesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}

	c.categories = categories
	c.categoriesAt = c.now()
	return categories, nil
}

// CategoryBySearchWord resolves the category whose searchWord matches.
func (c *Catalog) CategoryBySearchWord(searchWord string) (*domain.Category, error) {
	categories, err := c.Categories()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].SearchWord == searchWord {
			category := categories[i]
			return &category, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, searchWord)
}

func (c *Catalog) CategoryByID(id int) (*domain.Category, error) {
	categories, err := c.Categories()
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			category := categories[i]
			return &category, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrCategoryNotFound, id)
}

// RandomCategory picks one category uniformly.
func (c *Catalog) RandomCategory() (*domain.Category, error) {
	categories, err := c.Categories()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, errors.New("no categories available")
	}
	category := categories[rand.IntN(len(categories))]
	return &category, nil
}

// RandomCategories returns count distinct categories in shuffled order, or
// all of them shuffled when count is larger than the list.
func (c *Catalog) RandomCategories(count int) ([]domain.Category, error) {
	categories, err := c.Categories()
	if err != nil {
		return nil, err
	}
	shuffled := make([]domain.Category, len(categories))
	copy(shuffled, categories)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count < len(shuffled) {
		shuffled = shuffled[:count]
	}
	return shuffled, nil
}

// RandomLetter returns a random lowercase letter of the game alphabet.
func RandomLetter() string {
	return strings.ToLower(string(constants.Alphabet[rand.IntN(len(constants.Alphabet))]))
}

// OfflineWords returns the bundled word list for a category and letter.
// A category or letter with no offline data yields an empty list with a
// logged warning; gameplay must not stall on missing word lists.
func (c *Catalog) OfflineWords(searchWord, letter string) ([]string, error) {
	answers, err := c.offlineAnswers()
	if err != nil {
		return nil, err
	}

	categoryAnswers, ok := answers[searchWord]
	if !ok {
		c.logger.Warn().Str("category", searchWord).Msg("no offline data for category")
		return nil, nil
	}
	return categoryAnswers[strings.ToLower(letter)], nil
}

func (c *Catalog) offlineAnswers() (OfflineAnswers, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.answers != nil && c.now().Sub(c.answersAt) < c.ttl {
		return c.answers, nil
	}

	raw, err := c.readFile(offlineAnswersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read offline answers: %w", err)
	}

	var answers OfflineAnswers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("failed to parse offline answers: %w", err)
	}

	c.answers = answers
	c.answersAt = c.now()
	return answers, nil
}
