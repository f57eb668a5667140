package repository

import (
	"sync"

	"terradash/internal/domain/dataset"
)

// MemoryRepository keeps both collections in process memory. It is the
// default backend; data is lost on restart.
type MemoryRepository struct {
	mu        sync.RWMutex
	orders    []dataset.OrderRecord
	campaigns []dataset.CampaignRecord
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Orders() ([]dataset.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dataset.OrderRecord, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *MemoryRepository) Campaigns() ([]dataset.CampaignRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dataset.CampaignRecord, len(r.campaigns))
	copy(out, r.campaigns)
	return out, nil
}

func (r *MemoryRepository) ReplaceOrders(orders []dataset.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = make([]dataset.OrderRecord, len(orders))
	copy(r.orders, orders)
	return nil
}

func (r *MemoryRepository) ReplaceCampaigns(campaigns []dataset.CampaignRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.campaigns = make([]dataset.CampaignRecord, len(campaigns))
	copy(r.campaigns, campaigns)
	return nil
}
