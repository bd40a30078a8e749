package store

import (
	"context"
	"testing"

	"yatav-backend/internal/models"
)

type fakeCharacterStore struct {
	byID map[string]*models.Character
}

func newFakeCharacterStore() *fakeCharacterStore {
	return &fakeCharacterStore{byID: make(map[string]*models.Character)}
}

func (f *fakeCharacterStore) Insert(_ context.Context, ch *models.Character) error {
	f.byID[ch.ID] = ch
	return nil
}

func (f *fakeCharacterStore) ListActive(_ context.Context) ([]models.Character, error) {
	var out []models.Character
	for _, ch := range f.byID {
		if ch.IsActive {
			out = append(out, *ch)
		}
	}
	return out, nil
}

func (f *fakeCharacterStore) FindActive(ctx context.Context, id string) (*models.Character, error) {
	ch, err := f.Find(ctx, id)
	if err != nil || !ch.IsActive {
		return nil, ErrNotFound
	}
	return ch, nil
}

func (f *fakeCharacterStore) Find(_ context.Context, id string) (*models.Character, error) {
	ch, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return ch, nil
}

func TestDefaultCharactersValid(t *testing.T) {
	chars := DefaultCharacters()
	if len(chars) == 0 {
		t.Fatalf("no default characters")
	}
	seen := map[string]bool{}
	for _, ch := range chars {
		if ch.ID == "" || ch.Name == "" {
			t.Fatalf("character missing id or name: %+v", ch)
		}
		if seen[ch.ID] {
			t.Fatalf("duplicate character id %q", ch.ID)
		}
		seen[ch.ID] = true
		if ch.Difficulty < 1 || ch.Difficulty > 10 {
			t.Fatalf("character %s difficulty out of range: %d", ch.ID, ch.Difficulty)
		}
		if !ch.IsActive {
			t.Fatalf("seed character %s should be active", ch.ID)
		}
	}
}

func TestSeedCharactersIdempotent(t *testing.T) {
	fake := newFakeCharacterStore()
	ctx := context.Background()

	if err := SeedCharacters(ctx, fake); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	first := len(fake.byID)
	if first != len(DefaultCharacters()) {
		t.Fatalf("expected %d characters, got %d", len(DefaultCharacters()), first)
	}

	// Mutate one and reseed: existing documents stay untouched
	fake.byID["1"].Name = "수정됨"
	if err := SeedCharacters(ctx, fake); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}
	if len(fake.byID) != first {
		t.Fatalf("reseed inserted duplicates")
	}
	if fake.byID["1"].Name != "수정됨" {
		t.Fatalf("reseed overwrote existing character")
	}
}
