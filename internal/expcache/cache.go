// Package expcache caches rendered prelude headers on disk, keyed by a
// digest of everything that can change the output.
package expcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"sigil/internal/prelude"
)

// Bump when the Payload format changes.
const schemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [sha256.Size]byte

// Cache stores rendered headers under a per-user cache directory.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Payload is one cached rendering.
type Payload struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	Target string
	Header string
}

// Open initializes the cache at the standard location for app.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// Key digests every input that affects a rendering: the generating
// tool's version, the payload schema, and the full header value. Equal
// inputs always produce equal keys.
func Key(tool string, h prelude.Header) Digest {
	hash := sha256.New()
	sep := []byte{0}
	write := func(parts ...string) {
		for _, part := range parts {
			hash.Write([]byte(part))
			hash.Write(sep)
		}
	}
	write(tool, strconv.Itoa(int(schemaVersion)))
	write(h.Library, h.Prefix, h.Guard, h.Tool)
	write(h.Macros...)
	write(h.Profile.Family.String(), strconv.Itoa(h.Profile.Major), strconv.Itoa(h.Profile.Minor))
	write(h.Profile.Extensions...)
	write(strconv.FormatBool(h.Profile.NonNull), h.Mode.String())
	var key Digest
	hash.Sum(key[:0])
	return key
}

func (c *Cache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Subdirectory keeps renders separable from future artifact kinds.
	return filepath.Join(c.dir, "renders", hexKey+".mp")
}

// Put serializes and writes a payload, atomically.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload back. A missing entry or a schema mismatch is a
// miss, not an error.
func (c *Cache) Get(key Digest, out *Payload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != schemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
