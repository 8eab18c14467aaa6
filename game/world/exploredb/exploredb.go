// Package exploredb persists the explored-region set on a leveldb key/value
// store, so that the minimap survives between runs. The in-memory semantics
// of the tracker are unchanged: the store only pre-seeds it at startup and is
// flushed once at shutdown.
package exploredb

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Oliver-Form/fortune/game/world"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/util"
	"github.com/google/uuid"
)

var (
	keySettings = []byte("settings")
	chunkPrefix = []byte("c:")
)

// Settings describes the world a stored explored set belongs to. The set is
// discarded on load when the grid dimensions no longer match, since chunk
// positions of one map mean nothing on another.
type Settings struct {
	// Width and Height are the tile dimensions of the grid the set was
	// recorded on.
	Width, Height int
	// Session is the id of the game session that last flushed the set.
	Session uuid.UUID
}

// Provider is a leveldb-backed store for the explored-region set.
type Provider struct {
	db  *leveldb.DB
	dir string
}

// Open opens (or creates) the store in the directory passed.
func Open(dir string) (*Provider, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open explored db: %w", err)
	}
	return &Provider{db: db, dir: dir}, nil
}

// Settings reads the stored Settings. A store that was never flushed returns
// the zero Settings without error.
func (p *Provider) Settings() (Settings, error) {
	data, err := p.db.Get(keySettings, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read explored db settings: %w", err)
	}
	if len(data) != 24 {
		return Settings{}, fmt.Errorf("read explored db settings: unexpected length %v", len(data))
	}
	s := Settings{
		Width:  int(binary.LittleEndian.Uint32(data)),
		Height: int(binary.LittleEndian.Uint32(data[4:])),
	}
	copy(s.Session[:], data[8:])
	return s, nil
}

// SaveSettings writes the Settings passed.
func (p *Provider) SaveSettings(s Settings) error {
	data := make([]byte, 24)
	binary.LittleEndian.PutUint32(data, uint32(s.Width))
	binary.LittleEndian.PutUint32(data[4:], uint32(s.Height))
	copy(data[8:], s.Session[:])
	if err := p.db.Put(keySettings, data, nil); err != nil {
		return fmt.Errorf("save explored db settings: %w", err)
	}
	return nil
}

// Load reads all explored chunk positions from the store.
func (p *Provider) Load() ([]world.ChunkPos, error) {
	var positions []world.ChunkPos
	it := p.db.NewIterator(util.BytesPrefix(chunkPrefix), nil)
	defer it.Release()
	for it.Next() {
		key := it.Key()
		if len(key) != len(chunkPrefix)+8 {
			continue
		}
		positions = append(positions, chunkPosFromKey(key[len(chunkPrefix):]))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("load explored chunks: %w", err)
	}
	return positions, nil
}

// Store writes the explored chunk positions passed in a single batch.
// Positions already present are overwritten, so flushing a superset of a
// previous flush is safe.
func (p *Provider) Store(positions []world.ChunkPos) error {
	b := new(leveldb.Batch)
	for _, pos := range positions {
		b.Put(chunkKey(pos), nil)
	}
	if err := p.db.Write(b, nil); err != nil {
		return fmt.Errorf("store explored chunks: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (p *Provider) Close() error {
	return p.db.Close()
}

func chunkKey(pos world.ChunkPos) []byte {
	key := make([]byte, len(chunkPrefix)+8)
	copy(key, chunkPrefix)
	binary.BigEndian.PutUint32(key[len(chunkPrefix):], uint32(pos[0]))
	binary.BigEndian.PutUint32(key[len(chunkPrefix)+4:], uint32(pos[1]))
	return key
}

func chunkPosFromKey(b []byte) world.ChunkPos {
	return world.ChunkPos{
		int32(binary.BigEndian.Uint32(b)),
		int32(binary.BigEndian.Uint32(b[4:])),
	}
}
