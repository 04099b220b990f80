package catalog

import (
	"errors"
	"testing"
	"time"

	"riddle-rush/internal/constants"
	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

func newTestCatalog() *Catalog {
	return &Catalog{
		ttl:    constants.CategoryCacheTTL,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
}

func TestCategoriesFromEmbeddedData(t *testing.T) {
	c := newTestCatalog()

	categories, err := c.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) == 0 {
		t.Fatal("embedded catalog must not be empty")
	}

	seenIDs := map[int]bool{}
	for _, cat := range categories {
		if cat.ID == 0 || cat.Name == "" || cat.SearchWord == "" || cat.Key == "" {
			t.Errorf("incomplete category: %+v", cat)
		}
		if seenIDs[cat.ID] {
			t.Errorf("duplicate category id %d", cat.ID)
		}
		seenIDs[cat.ID] = true
		switch cat.SearchProvider {
		case domain.ProviderOffline, domain.ProviderPetScan, domain.ProviderWikipedia:
		default:
			t.Errorf("category %s has unknown provider %q", cat.Name, cat.SearchProvider)
		}
	}
}

func TestCategoriesCachedUntilTTL(t *testing.T) {
	c := newTestCatalog()
	current := time.Now()
	c.now = func() time.Time { return current }

	first, err := c.Categories()
	if err != nil {
		t.Fatal(err)
	}

	// Poison the cache; within the TTL the poisoned slice must come back.
	c.mu.Lock()
	c.categories = []domain.Category{{ID: 99, Name: "Sentinel"}}
	c.mu.Unlock()

	cached, err := c.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cached) != 1 || cached[0].ID != 99 {
		t.Error("within TTL the cached list must be served")
	}

	current = current.Add(c.ttl + time.Second)
	reloaded, err := c.Categories()
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != len(first) {
		t.Errorf("after TTL expiry got %d categories, want %d", len(reloaded), len(first))
	}
}

func TestCategoryBySearchWord(t *testing.T) {
	c := newTestCatalog()

	got, err := c.CategoryBySearchWord("animal")
	if err != nil {
		t.Fatalf("CategoryBySearchWord failed: %v", err)
	}
	if got.Name != "Tier" || got.SearchProvider != domain.ProviderOffline {
		t.Errorf("got %+v, want Tier/offline", got)
	}

	_, err = c.CategoryBySearchWord("does-not-exist")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryByID(t *testing.T) {
	c := newTestCatalog()

	got, err := c.CategoryByID(3)
	if err != nil {
		t.Fatalf("CategoryByID failed: %v", err)
	}
	if got.Key != "country" {
		t.Errorf("got %+v, want country", got)
	}
	if len(got.AdditionalData) == 0 {
		t.Error("country category must carry additional answers")
	}

	_, err = c.CategoryByID(9999)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestRandomCategory(t *testing.T) {
	c := newTestCatalog()

	for i := 0; i < 20; i++ {
		got, err := c.RandomCategory()
		if err != nil {
			t.Fatalf("RandomCategory failed: %v", err)
		}
		if got.ID == 0 {
			t.Errorf("random category has no id: %+v", got)
		}
	}
}

func TestRandomCategories(t *testing.T) {
	c := newTestCatalog()

	all, err := c.Categories()
	if err != nil {
		t.Fatal(err)
	}

	picked, err := c.RandomCategories(3)
	if err != nil {
		t.Fatalf("RandomCategories failed: %v", err)
	}
	if len(picked) != 3 {
		t.Fatalf("got %d categories, want 3", len(picked))
	}
	seen := map[int]bool{}
	for _, cat := range picked {
		if seen[cat.ID] {
			t.Errorf("duplicate category id %d in random pick", cat.ID)
		}
		seen[cat.ID] = true
	}

	over, err := c.RandomCategories(len(all) + 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(over) != len(all) {
		t.Errorf("oversized count returned %d categories, want all %d", len(over), len(all))
	}
}

func TestRandomLetter(t *testing.T) {
	for i := 0; i < 100; i++ {
		letter := RandomLetter()
		if len(letter) != 1 || letter < "a" || letter > "z" {
			t.Fatalf("RandomLetter() = %q, want lowercase a-z", letter)
		}
	}
}

func TestOfflineWords(t *testing.T) {
	c := newTestCatalog()

	words, err := c.OfflineWords("animal", "b")
	if err != nil {
		t.Fatalf("OfflineWords failed: %v", err)
	}
	if len(words) == 0 {
		t.Fatal("animal/b must have bundled words")
	}
	for _, w := range words {
		if w == "" {
			t.Error("empty word in offline list")
		}
	}

	upper, err := c.OfflineWords("animal", "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(upper) != len(words) {
		t.Error("letter lookup must be case insensitive")
	}
}

func TestOfflineWordsMissingData(t *testing.T) {
	c := newTestCatalog()

	words, err := c.OfflineWords("no-such-category", "b")
	if err != nil {
		t.Fatalf("missing category must not error: %v", err)
	}
	if words != nil {
		t.Errorf("words = %v, want nil", words)
	}

	words, err = c.OfflineWords("animal", "ß")
	if err != nil {
		t.Fatalf("missing letter must not error: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("words = %v, want empty", words)
	}
}

func TestDataDirOverrideFallsBack(t *testing.T) {
	c := newTestCatalog()
	c.dataDir = t.TempDir()

	categories, err := c.Categories()
	if err != nil {
		t.Fatalf("unreadable override must fall back to embedded data: %v", err)
	}
	if len(categories) == 0 {
		t.Error("fallback returned no categories")
	}
}
