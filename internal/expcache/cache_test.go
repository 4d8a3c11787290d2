package expcache

import (
	"os"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"sigil/internal/directive"
	"sigil/internal/prelude"
	"sigil/internal/toolchain"
)

func testHeader() prelude.Header {
	return prelude.Header{
		Library: "libcoffee",
		Prefix:  "COFFEE",
		Tool:    "sigil 0.1.0",
		Profile: toolchain.Profile{
			Family:     toolchain.FamilyClang,
			Extensions: []string{toolchain.ExtDeprecatedMessage},
		},
		Mode: directive.Mode{NoDeprecated: true},
	}
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := Open("sigil-test")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return c
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("sigil 0.1.0", testHeader())
	b := Key("sigil 0.1.0", testHeader())
	if a != b {
		t.Errorf("Key() unstable for equal inputs")
	}
}

func TestKey_SensitiveToInputs(t *testing.T) {
	base := Key("sigil 0.1.0", testHeader())

	tool := Key("sigil 0.2.0", testHeader())
	if tool == base {
		t.Errorf("key ignores tool version")
	}

	h := testHeader()
	h.Mode.NoDeprecated = false
	if Key("sigil 0.1.0", h) == base {
		t.Errorf("key ignores mode switches")
	}

	h = testHeader()
	h.Profile.Extensions = nil
	if Key("sigil 0.1.0", h) == base {
		t.Errorf("key ignores extensions")
	}

	h = testHeader()
	h.Profile.Family = toolchain.FamilyGCC
	if Key("sigil 0.1.0", h) == base {
		t.Errorf("key ignores family")
	}

	h = testHeader()
	h.Guard = "COFFEE_MARKS_H"
	if Key("sigil 0.1.0", h) == base {
		t.Errorf("key ignores the guard override")
	}

	h = testHeader()
	h.Macros = []string{prelude.MacroPublic}
	if Key("sigil 0.1.0", h) == base {
		t.Errorf("key ignores the macro subset")
	}
}

// Field values must not be able to collide across field boundaries.
func TestKey_FieldBoundaries(t *testing.T) {
	a := testHeader()
	a.Library = "ab"
	a.Prefix = "c"
	b := testHeader()
	b.Library = "a"
	b.Prefix = "bc"
	if Key("sigil", a) == Key("sigil", b) {
		t.Errorf("adjacent fields collide")
	}
}

func TestCache_RoundTrip(t *testing.T) {
	c := openTestCache(t)
	key := Key("sigil 0.1.0", testHeader())

	var miss Payload
	found, err := c.Get(key, &miss)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if found {
		t.Fatalf("Get() hit on empty cache")
	}

	put := &Payload{Target: "macos-clang", Header: "#ifndef COFFEE_ANNOTATIONS_H\n"}
	if err := c.Put(key, put); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	var got Payload
	found, err = c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !found {
		t.Fatalf("Get() missed after Put()")
	}
	if got.Target != put.Target || got.Header != put.Header {
		t.Errorf("Get() = %+v, want %+v", got, *put)
	}
}

func TestCache_SchemaMismatchIsMiss(t *testing.T) {
	c := openTestCache(t)
	key := Key("sigil 0.1.0", testHeader())
	if err := c.Put(key, &Payload{Target: "a", Header: "x"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	// Rewrite the entry with a stale schema number.
	var stale Payload
	if ok, err := c.Get(key, &stale); !ok || err != nil {
		t.Fatalf("Get() = (%v, %v)", ok, err)
	}
	stale.Schema = schemaVersion + 1
	raw, err := msgpack.Marshal(&stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(c.pathFor(key), raw, 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	var got Payload
	found, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if found {
		t.Errorf("stale schema should read as a miss")
	}
}

func TestCache_DropAll(t *testing.T) {
	c := openTestCache(t)
	key := Key("sigil 0.1.0", testHeader())
	if err := c.Put(key, &Payload{Target: "a", Header: "x"}); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll() error: %v", err)
	}
	var got Payload
	found, err := c.Get(key, &got)
	if found {
		t.Errorf("Get() hit after DropAll() (err %v)", err)
	}
}

func TestCache_NilIsSafe(t *testing.T) {
	var c *Cache
	if err := c.Put(Digest{}, &Payload{}); err != nil {
		t.Errorf("nil Put() error: %v", err)
	}
	if found, err := c.Get(Digest{}, &Payload{}); found || err != nil {
		t.Errorf("nil Get() = (%v, %v)", found, err)
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("nil DropAll() error: %v", err)
	}
}
