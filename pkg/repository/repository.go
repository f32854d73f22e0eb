package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timshannon/bolthold"

	"routarr/pkg/models"
)

// Repository defines the interface for data access operations
type Repository interface {
	// Decision operations
	SaveDecision(decision *models.Decision) error
	GetDecision(id string) (*models.Decision, error)
	FindRecentDecisions(limit int) ([]*models.Decision, error)
	CountDecisions(matched bool) (int, error)

	// Utility operations
	Close() error
}

// BoltRepository implements Repository using BoltDB
type BoltRepository struct {
	store *bolthold.Store
}

func NewBoltRepository(store *bolthold.Store) Repository {
	return &BoltRepository{store: store}
}

// SaveDecision stores a routing decision, assigning an ID and timestamp
// when the caller left them unset.
func (r *BoltRepository) SaveDecision(decision *models.Decision) error {
	if decision.ID == "" {
		decision.ID = uuid.NewString()
	}
	if decision.ReceivedAt.IsZero() {
		decision.ReceivedAt = time.Now()
	}
	if err := r.store.Upsert(decision.ID, decision); err != nil {
		return fmt.Errorf("failed to save decision: %w", err)
	}
	return nil
}

func (r *BoltRepository) GetDecision(id string) (*models.Decision, error) {
	var decision models.Decision
	if err := r.store.Get(id, &decision); err != nil {
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}
	return &decision, nil
}

// FindRecentDecisions returns the most recent decisions, newest first.
func (r *BoltRepository) FindRecentDecisions(limit int) ([]*models.Decision, error) {
	var decisions []*models.Decision
	query := bolthold.Where("ReceivedAt").Ge(time.Time{}).SortBy("ReceivedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := r.store.Find(&decisions, query); err != nil {
		return nil, fmt.Errorf("failed to find recent decisions: %w", err)
	}
	return decisions, nil
}

func (r *BoltRepository) CountDecisions(matched bool) (int, error) {
	count, err := r.store.Count(&models.Decision{}, bolthold.Where("Matched").Eq(matched))
	if err != nil {
		return 0, fmt.Errorf("failed to count decisions: %w", err)
	}
	return count, nil
}

func (r *BoltRepository) Close() error {
	if err := r.store.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
