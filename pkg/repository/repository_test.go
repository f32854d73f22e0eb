package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/timshannon/bolthold"

	"routarr/pkg/models"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	store, err := bolthold.Open(filepath.Join(t.TempDir(), "test.db"), 0666, nil)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	repo := NewBoltRepository(store)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveDecisionAssignsIdentity(t *testing.T) {
	repo := newTestRepository(t)

	decision := &models.Decision{
		MediaType: models.MediaTypeMovie,
		TmdbID:    438631,
		Subject:   "Dune (2021)",
		Matched:   true,
		Instances: []string{"radarr-main"},
	}
	if err := repo.SaveDecision(decision); err != nil {
		t.Fatalf("SaveDecision() error = %v", err)
	}
	if decision.ID == "" {
		t.Error("SaveDecision() left ID unset")
	}
	if decision.ReceivedAt.IsZero() {
		t.Error("SaveDecision() left ReceivedAt unset")
	}

	got, err := repo.GetDecision(decision.ID)
	if err != nil {
		t.Fatalf("GetDecision() error = %v", err)
	}
	if got.Subject != "Dune (2021)" || !got.Matched {
		t.Errorf("GetDecision() = %+v, want saved decision", got)
	}
}

func TestFindRecentDecisionsOrder(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		decision := &models.Decision{
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
			MediaType:  models.MediaTypeTV,
			Subject:    "Show",
			Matched:    i%2 == 0,
		}
		if err := repo.SaveDecision(decision); err != nil {
			t.Fatalf("SaveDecision() error = %v", err)
		}
	}

	recent, err := repo.FindRecentDecisions(3)
	if err != nil {
		t.Fatalf("FindRecentDecisions() error = %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len(recent) = %d, want 3", len(recent))
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].ReceivedAt.After(recent[i-1].ReceivedAt) {
			t.Error("FindRecentDecisions() not sorted newest first")
		}
	}
}

func TestCountDecisions(t *testing.T) {
	repo := newTestRepository(t)

	for _, matched := range []bool{true, true, false} {
		if err := repo.SaveDecision(&models.Decision{Matched: matched}); err != nil {
			t.Fatalf("SaveDecision() error = %v", err)
		}
	}

	hits, err := repo.CountDecisions(true)
	if err != nil {
		t.Fatalf("CountDecisions(true) error = %v", err)
	}
	misses, err := repo.CountDecisions(false)
	if err != nil {
		t.Fatalf("CountDecisions(false) error = %v", err)
	}
	if hits != 2 || misses != 1 {
		t.Errorf("counts = %d matched, %d unmatched, want 2 and 1", hits, misses)
	}
}
