package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"terradash/internal/domain/dataset"
)

// FileRepository persists each collection as a JSON file under dataDir.
// A replace writes to a temp file first and renames it into place, so a
// failed write cannot corrupt the previous collection.
type FileRepository struct {
	mu            sync.Mutex
	ordersPath    string
	campaignsPath string
}

// NewFileRepository creates the data directory if needed.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileRepository{
		ordersPath:    filepath.Join(dataDir, "orders.json"),
		campaignsPath: filepath.Join(dataDir, "campaigns.json"),
	}, nil
}

func (r *FileRepository) Orders() ([]dataset.OrderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []dataset.OrderRecord
	if err := readJSON(r.ordersPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FileRepository) Campaigns() ([]dataset.CampaignRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []dataset.CampaignRecord
	if err := readJSON(r.campaignsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FileRepository) ReplaceOrders(orders []dataset.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSON(r.ordersPath, orders)
}

func (r *FileRepository) ReplaceCampaigns(campaigns []dataset.CampaignRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return writeJSON(r.campaignsPath, campaigns)
}

// readJSON decodes path into v. A missing file means an empty collection.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
