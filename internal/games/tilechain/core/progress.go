package core

import (
	"fmt"
	"sync"
)

// StarStore persists one best star rating per level id. BestStars returns
// 0 for levels that were never completed.
type StarStore interface {
	BestStars(levelID string) (int, error)
	SaveStars(levelID string, stars int) error
}

// Progress applies the keep-the-best rule on top of a StarStore.
type Progress struct {
	store StarStore
}

func NewProgress(store StarStore) *Progress {
	return &Progress{store: store}
}

// Best returns the stored rating for levelID.
func (p *Progress) Best(levelID string) (int, error) {
	return p.store.BestStars(levelID)
}

// Record saves stars for levelID only if it beats the stored rating. It
// reports whether a write happened.
func (p *Progress) Record(levelID string, stars int) (bool, error) {
	if stars < 1 || stars > MaxStars {
		return false, fmt.Errorf("tilechain: star rating %d out of range", stars)
	}
	best, err := p.store.BestStars(levelID)
	if err != nil {
		return false, err
	}
	if stars <= best {
		return false, nil
	}
	if err := p.store.SaveStars(levelID, stars); err != nil {
		return false, err
	}
	return true, nil
}

// MemoryStars is an in-process StarStore.
type MemoryStars struct {
	mu    sync.Mutex
	stars map[string]int
}

func NewMemoryStars() *MemoryStars {
	return &MemoryStars{stars: make(map[string]int)}
}

func (m *MemoryStars) BestStars(levelID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stars[levelID], nil
}

func (m *MemoryStars) SaveStars(levelID string, stars int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stars[levelID] = stars
	return nil
}
