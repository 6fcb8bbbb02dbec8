package store

import (
	"encoding/json"
	"os"
	"sync"

	"pausenhof-backend/internal/models"
)

// FilePersister writes the snapshot to a single JSON file, matching the
// legacy data file format, and appends transactions to a JSON-lines log
// next to it.
type FilePersister struct {
	mu    sync.Mutex
	path  string
	txLog string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path, txLog: path + ".txlog"}
}

func (p *FilePersister) LoadAll() (*Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return NewSnapshot(), nil
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (p *FilePersister) SaveAll(snap *Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p *FilePersister) AppendTransaction(tx *models.Transaction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := json.Marshal(tx)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p.txLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(raw, '\n'))
	return err
}

func (p *FilePersister) Close() error {
	return nil
}
