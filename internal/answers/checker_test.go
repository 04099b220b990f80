package answers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"riddle-rush/internal/domain"

	"github.com/rs/zerolog"
)

type fakeCategorySource struct {
	categories map[string]*domain.Category
	words      map[string]map[string][]string
}

func (f *fakeCategorySource) CategoryBySearchWord(searchWord string) (*domain.Category, error) {
	if c, ok := f.categories[searchWord]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("category not found: %s", searchWord)
}

func (f *fakeCategorySource) OfflineWords(searchWord, letter string) ([]string, error) {
	byLetter, ok := f.words[searchWord]
	if !ok {
		return nil, nil
	}
	return byLetter[letter], nil
}

type fakeMemberSource struct {
	members map[string][]string
	err     error
	calls   int
}

func (f *fakeMemberSource) CategoryMembers(_ context.Context, category string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.members[category], nil
}

func newTestChecker(offline bool) (*Checker, *fakeMemberSource) {
	catalog := &fakeCategorySource{
		categories: map[string]*domain.Category{
			"Tiere": {
				ID: 1, Name: "Tier", SearchWord: "Tiere", Key: "animal",
				SearchProvider: domain.ProviderOffline,
			},
			"Städte": {
				ID: 2, Name: "Stadt", SearchWord: "Städte", Key: "city",
				SearchProvider: domain.ProviderPetScan,
			},
			"Länder": {
				ID: 3, Name: "Land", SearchWord: "Länder", Key: "country",
				SearchProvider: domain.ProviderOffline,
				AdditionalData: []string{"Burkina Faso"},
			},
			"Komponisten": {
				ID: 4, Name: "Komponist", SearchWord: "Komponisten", Key: "composer",
				SearchProvider: domain.ProviderWikipedia,
			},
			"Kaputt": {
				ID: 5, Name: "Kaputt", SearchWord: "Kaputt", Key: "broken",
				SearchProvider: domain.SearchProvider("carrier-pigeon"),
			},
		},
		words: map[string]map[string][]string{
			"Tiere": {
				"b": {"Bear", "Buffalo", "Beaver", "Bison", "Badger", "Bat", "Bee"},
			},
			"Länder": {
				"b": {"Belgien", "Brasilien"},
			},
		},
	}
	petscan := &fakeMemberSource{
		members: map[string][]string{
			"Städte": {"Berlin", "Bremen", "Bonn", "Hamburg", "München"},
		},
	}
	return NewChecker(catalog, petscan, offline, zerolog.Nop()), petscan
}

func TestCheckAnswerOffline(t *testing.T) {
	checker, _ := newTestChecker(false)

	tests := []struct {
		name      string
		term      string
		wantFound bool
		wantOther []string
	}{
		{
			name:      "exact match excluded from suggestions",
			term:      "Bear",
			wantFound: true,
			wantOther: []string{"Buffalo", "Beaver", "Bison", "Badger"},
		},
		{
			name:      "miss keeps first four alternatives",
			term:      "Bxyz",
			wantFound: false,
			wantOther: []string{"Bear", "Buffalo", "Beaver", "Bison"},
		},
		{
			name:      "wrong case is a miss",
			term:      "bear",
			wantFound: false,
			wantOther: []string{"Bear", "Buffalo", "Beaver", "Bison"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := checker.CheckAnswer(context.Background(), "Tiere", "b", tt.term)
			if err != nil {
				t.Fatalf("CheckAnswer failed: %v", err)
			}
			if result.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", result.Found, tt.wantFound)
			}
			if len(result.Other) != len(tt.wantOther) {
				t.Fatalf("Other = %v, want %v", result.Other, tt.wantOther)
			}
			for i, want := range tt.wantOther {
				if result.Other[i] != want {
					t.Errorf("Other[%d] = %q, want %q", i, result.Other[i], want)
				}
			}
		})
	}
}

func TestCheckAnswerLetterFilter(t *testing.T) {
	checker, _ := newTestChecker(false)

	// Petscan category: only the B cities survive the prefix filter.
	result, err := checker.CheckAnswer(context.Background(), "Städte", "b", "Berlin")
	if err != nil {
		t.Fatalf("CheckAnswer failed: %v", err)
	}
	if !result.Found {
		t.Error("Berlin should be found")
	}
	for _, other := range result.Other {
		if other[0] != 'B' {
			t.Errorf("suggestion %q does not start with the round letter", other)
		}
	}
	if len(result.Other) != 2 {
		t.Errorf("Other = %v, want the two remaining B cities", result.Other)
	}
}

func TestCheckAnswerAdditionalData(t *testing.T) {
	checker, _ := newTestChecker(false)

	result, err := checker.CheckAnswer(context.Background(), "Länder", "b", "Burkina Faso")
	if err != nil {
		t.Fatalf("CheckAnswer failed: %v", err)
	}
	if !result.Found {
		t.Error("additional data answers must count as valid")
	}
}

func TestCheckAnswerUnknownCategory(t *testing.T) {
	checker, _ := newTestChecker(false)

	if _, err := checker.CheckAnswer(context.Background(), "Planeten", "b", "Bespin"); err == nil {
		t.Fatal("unknown category must return an error")
	}
}

func TestCheckAnswerWikipediaNotImplemented(t *testing.T) {
	checker, _ := newTestChecker(false)

	_, err := checker.CheckAnswer(context.Background(), "Komponisten", "b", "Bach")
	if !errors.Is(err, ErrProviderNotImplemented) {
		t.Fatalf("err = %v, want ErrProviderNotImplemented", err)
	}
}

func TestCheckAnswerUnknownProvider(t *testing.T) {
	checker, _ := newTestChecker(false)

	_, err := checker.CheckAnswer(context.Background(), "Kaputt", "b", "Brief")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("err = %v, want ErrUnknownProvider", err)
	}
}

func TestCheckAnswerPetScanFailureDegrades(t *testing.T) {
	checker, petscan := newTestChecker(false)
	petscan.err = errors.New("petscan timeout")

	result, err := checker.CheckAnswer(context.Background(), "Städte", "b", "Berlin")
	if err != nil {
		t.Fatalf("fetch failure must not become a caller error: %v", err)
	}
	if result.Found {
		t.Error("no candidates, nothing can be found")
	}
	if len(result.Other) != 0 {
		t.Errorf("Other = %v, want empty", result.Other)
	}
}

func TestOfflineModeSkipsPetScan(t *testing.T) {
	checker, petscan := newTestChecker(true)

	if _, err := checker.CheckAnswer(context.Background(), "Städte", "b", "Berlin"); err != nil {
		t.Fatalf("CheckAnswer failed: %v", err)
	}
	if petscan.calls != 0 {
		t.Errorf("petscan called %d times in offline mode, want 0", petscan.calls)
	}

	checker.SetOfflineMode(false)
	if _, err := checker.CheckAnswer(context.Background(), "Städte", "b", "Berlin"); err != nil {
		t.Fatalf("CheckAnswer failed: %v", err)
	}
	if petscan.calls != 1 {
		t.Errorf("petscan called %d times after re-enabling, want 1", petscan.calls)
	}
}
