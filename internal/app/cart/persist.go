package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paikari/paikariworld-backend/internal/app/model"
	"github.com/paikari/paikariworld-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const opTimeout = 5 * time.Second

// State is the durable form of a cart record: the full line-item map,
// written in full on every mutation and re-read in full on startup.
type State struct {
	Cart map[string]model.LineItem `json:"cart"`
}

// Persister binds a Store to exactly one durable record.
type Persister interface {
	Load() (*State, error)
	Save(state *State) error
}

// PersisterFactory yields the persister for one guest session's record.
type PersisterFactory func(sessionID string) Persister

func emptyState() *State {
	return &State{Cart: make(map[string]model.LineItem)}
}

// FilePersister keeps the cart record as a JSON file on local disk.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() (*State, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyState(), nil
		}
		return nil, fmt.Errorf("failed to read cart record: %w", err)
	}

	state := emptyState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode cart record: %w", err)
	}
	if state.Cart == nil {
		state.Cart = make(map[string]model.LineItem)
	}
	return state, nil
}

func (p *FilePersister) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart storage dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart record: %w", err)
	}
	return nil
}

// FilePersisterFactory stores one JSON record per guest session under dir,
// named after the configured store name.
func FilePersisterFactory(dir, name string) PersisterFactory {
	return func(sessionID string) Persister {
		return NewFilePersister(filepath.Join(dir, fmt.Sprintf("%s-%s.json", name, sessionID)))
	}
}

// PruneFiles removes file-backed cart records not modified within maxAge.
// Returns the number of records removed.
func PruneFiles(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			logger.Warn("Failed to remove stale cart record", map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			})
			continue
		}
		removed++
	}
	return removed, nil
}

// RedisPersister keeps the cart record as a single Redis value with a
// guest TTL refreshed on every write.
type RedisPersister struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, key string, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, key: key, ttl: ttl}
}

func (p *RedisPersister) Load() (*State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := p.client.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return emptyState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart record: %w", err)
	}

	state := emptyState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode cart record: %w", err)
	}
	if state.Cart == nil {
		state.Cart = make(map[string]model.LineItem)
	}
	return state, nil
}

func (p *RedisPersister) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cart record: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := p.client.Set(ctx, p.key, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart record: %w", err)
	}
	return nil
}

// RedisPersisterFactory namespaces one Redis key per guest session under
// the configured store name.
func RedisPersisterFactory(client *redis.Client, name string, ttl time.Duration) PersisterFactory {
	return func(sessionID string) Persister {
		return NewRedisPersister(client, fmt.Sprintf("%s:%s", name, sessionID), ttl)
	}
}

// MemoryPersister holds the serialized record in memory. It round-trips
// through JSON so tests exercise the same encoding as the durable
// backends.
type MemoryPersister struct {
	data []byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load() (*State, error) {
	if p.data == nil {
		return emptyState(), nil
	}
	state := emptyState()
	if err := json.Unmarshal(p.data, state); err != nil {
		return nil, err
	}
	if state.Cart == nil {
		state.Cart = make(map[string]model.LineItem)
	}
	return state, nil
}

func (p *MemoryPersister) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	p.data = data
	return nil
}
