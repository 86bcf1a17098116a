package production

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/comalice/transientx"
	"github.com/comalice/transientx/hashing"
	"github.com/comalice/transientx/unwrap"
)

// ErrOpenBatch is returned when snapshotting a structure whose batch is not sealed.
var ErrOpenBatch = errors.New("structure belongs to an open mutation batch")

// Snapshot is the serializable plain form of a sealed persistent structure.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Type      string    `json:"type" yaml:"type"`
	Hash      uint32    `json:"hash" yaml:"hash"`
	Data      any       `json:"data" yaml:"data"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewSnapshot unwraps v into a Snapshot with a fresh ID. Only sealed structures
// can be snapshotted; an open batch could still change underneath the snapshot.
func NewSnapshot(v transientx.Owner) (Snapshot, error) {
	if transientx.IsMutable(v) {
		return Snapshot{}, fmt.Errorf("snapshot %T: %w", v, ErrOpenBatch)
	}
	return Snapshot{
		ID:        uuid.NewString(),
		Type:      fmt.Sprintf("%T", v),
		Hash:      hashing.Hash(v),
		Data:      unwrap.Unwrap(v),
		Timestamp: time.Now().UTC(),
	}, nil
}

// Persister stores and retrieves snapshots by ID.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
}

// SaveAll saves snapshots concurrently with at most limit writes in flight.
// The first error cancels the remaining saves.
func SaveAll(ctx context.Context, p Persister, snapshots []Snapshot, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, s := range snapshots {
		g.Go(func() error {
			return p.Save(ctx, s)
		})
	}
	return g.Wait()
}

// JSONPersister is a file-based persister using JSON serialization.
type JSONPersister struct {
	dir string
}

// NewJSONPersister creates a JSONPersister, ensuring the directory exists.
func NewJSONPersister(dir string) (*JSONPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &JSONPersister{dir: dir}, nil
}

func (p *JSONPersister) Save(ctx context.Context, snapshot Snapshot) error {
	if err := checkSave(ctx, snapshot); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	return writeSnapshot(filepath.Join(p.dir, snapshot.ID+".json"), data)
}

func (p *JSONPersister) Load(ctx context.Context, id string) (Snapshot, error) {
	data, err := readSnapshot(ctx, filepath.Join(p.dir, id+".json"), id)
	if err != nil {
		return Snapshot{}, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	snapshot.ID = id // Ensure ID
	return snapshot, nil
}

// YAMLPersister is a file-based persister using YAML serialization.
type YAMLPersister struct {
	dir string
}

// NewYAMLPersister creates a YAMLPersister, ensuring the directory exists.
func NewYAMLPersister(dir string) (*YAMLPersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &YAMLPersister{dir: dir}, nil
}

func (p *YAMLPersister) Save(ctx context.Context, snapshot Snapshot) error {
	if err := checkSave(ctx, snapshot); err != nil {
		return err
	}
	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return writeSnapshot(filepath.Join(p.dir, snapshot.ID+".yaml"), data)
}

func (p *YAMLPersister) Load(ctx context.Context, id string) (Snapshot, error) {
	data, err := readSnapshot(ctx, filepath.Join(p.dir, id+".yaml"), id)
	if err != nil {
		return Snapshot{}, err
	}
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	snapshot.ID = id // Ensure ID
	return snapshot, nil
}

// NewPersister returns the file persister for format ("json" or "yaml").
func NewPersister(format, dir string) (Persister, error) {
	switch format {
	case "json":
		return NewJSONPersister(dir)
	case "yaml":
		return NewYAMLPersister(dir)
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

func checkSave(ctx context.Context, snapshot Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snapshot.ID == "" {
		return errors.New("snapshot ID is required")
	}
	return nil
}

func writeSnapshot(fn string, data []byte) error {
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", fn, err)
	}
	return nil
}

func readSnapshot(ctx context.Context, fn, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %q: %w", id, os.ErrNotExist)
		}
		return nil, fmt.Errorf("read %s: %w", fn, err)
	}
	return data, nil
}
