// Package store persists family tree snapshots.
//
// A snapshot is the ordered JSON list of members, stored under a single key
// (default "family-canvas-data") with no version tag. Backends:
//   - [MemoryStore]: in-process, for tests and ephemeral servers
//   - [FileStore]: one JSON file per key, for the CLI
//   - [RedisStore]: shared storage for multi-instance servers
//   - [MongoStore]: one document per key
//
// Loading is forgiving: [LoadOrEmpty] turns a missing, unreadable or
// malformed snapshot into an empty registry and logs the reason, so a broken
// store never blocks starting a new tree.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/observability"
)

// DefaultKey is the storage key of the snapshot.
const DefaultKey = "family-canvas-data"

// ErrNotFound is returned by Load when nothing has been saved under the key.
var ErrNotFound = stderrors.New("snapshot not found")

// Store is the interface for snapshot persistence backends.
type Store interface {
	// Load returns the saved members in order, or ErrNotFound.
	Load(ctx context.Context) ([]family.Member, error)

	// Save replaces the snapshot.
	Save(ctx context.Context, members []family.Member) error

	// Backend names the implementation, e.g. "file".
	Backend() string

	// Close releases backend resources.
	Close() error
}

// Encode returns the wire form of a snapshot.
func Encode(members []family.Member) ([]byte, error) {
	if members == nil {
		members = []family.Member{}
	}
	return json.Marshal(members)
}

// Decode parses the wire form of a snapshot.
func Decode(data []byte) ([]family.Member, error) {
	var members []family.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Load reads a snapshot and rebuilds a registry from it, failing with a
// STORAGE_ERROR when the payload is unusable. Hooks are notified.
func Load(ctx context.Context, s Store) (*family.Registry, error) {
	start := time.Now()
	members, err := s.Load(ctx)
	if err != nil {
		observability.Store().OnLoad(ctx, s.Backend(), 0, time.Since(start), err)
		if stderrors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load snapshot from %s", s.Backend())
	}
	reg, err := family.FromMembers(members)
	if err == nil {
		if symErr := family.CheckSymmetry(reg); symErr != nil {
			err = symErr
		}
	}
	observability.Store().OnLoad(ctx, s.Backend(), len(members), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "malformed snapshot in %s", s.Backend())
	}
	return reg, nil
}

// LoadOrEmpty is [Load] that degrades to an empty registry. A missing
// snapshot is logged at debug level, any other failure as a warning.
func LoadOrEmpty(ctx context.Context, s Store, logger *log.Logger) *family.Registry {
	if logger == nil {
		logger = log.Default()
	}
	reg, err := Load(ctx, s)
	switch {
	case err == nil:
		logger.Debug("loaded snapshot", "backend", s.Backend(), "members", reg.Len())
		return reg
	case stderrors.Is(err, ErrNotFound):
		logger.Debug("no snapshot yet, starting empty", "backend", s.Backend())
	default:
		logger.Warn("could not load snapshot, starting empty", "backend", s.Backend(), "err", err)
	}
	return family.NewRegistry()
}

// Save writes members and notifies hooks. Failures are wrapped as
// STORAGE_ERROR.
func Save(ctx context.Context, s Store, members []family.Member) error {
	start := time.Now()
	err := s.Save(ctx, members)
	observability.Store().OnSave(ctx, s.Backend(), len(members), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save snapshot to %s", s.Backend())
	}
	return nil
}
