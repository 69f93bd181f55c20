package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/cobolgraph/pkg/config"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if n, err := c.Clear(); n != 0 || err != nil {
		t.Errorf("Clear() = %d, %v, want 0, nil", n, err)
	}
}

func TestClearer(t *testing.T) {
	ctx := context.Background()
	fc, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"PGM1", "PGM2"} {
		if err := fc.Set(ctx, key, []byte("{}"), TTLUnit); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		c    Clearer
		want int
	}{
		{"file cache with two units", fc, 2},
		{"file cache already cleared", fc, 0},
		{"null cache", NewNullCache(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.c.Clear()
			if err != nil {
				t.Fatalf("Clear() error: %v", err)
			}
			if n != tt.want {
				t.Errorf("Clear() = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "unit:a"); hit || err != nil {
		t.Fatalf("Get(empty) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "unit:a", []byte("payload"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "unit:a")
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, hit %v, err %v", data, hit, err)
	}

	if err := c.Delete(ctx, "unit:a"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "unit:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "unit:missing"); err != nil {
		t.Errorf("Delete(missing) error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v; want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestUnitKey(t *testing.T) {
	base := config.Default()
	k := UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", base)

	tests := []struct {
		name   string
		key    func() string
		differ bool
	}{
		{"same inputs", func() string { return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", base) }, false},
		{"other unit", func() string { return UnitKey("PAY02", "src/PAY01.cbl", "abc", "v1", base) }, true},
		{"other path", func() string { return UnitKey("PAY01", "old/PAY01.cbl", "abc", "v1", base) }, true},
		{"other fingerprint", func() string { return UnitKey("PAY01", "src/PAY01.cbl", "abd", "v1", base) }, true},
		{"other version", func() string { return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v2", base) }, true},
		{"trace pattern", func() string {
			cfg := config.Default()
			cfg.Analysis.TracePattern = "^TRC-"
			return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", cfg)
		}, true},
		{"render formats", func() string {
			cfg := config.Default()
			cfg.Render.Formats = []string{"svg"}
			return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", cfg)
		}, true},
		{"copybook dirs", func() string {
			cfg := config.Default()
			cfg.Copybook.Dirs = []string{"copy"}
			return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", cfg)
		}, true},
		{"copybook fingerprint", func() string { return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", base, "PAYREC=f1") }, true},
		{"workers ignored", func() string {
			cfg := config.Default()
			cfg.Workers = 99
			cfg.Paths.OutputDir = "/elsewhere"
			return UnitKey("PAY01", "src/PAY01.cbl", "abc", "v1", cfg)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key() != k; got != tt.differ {
				t.Errorf("key differs = %v, want %v", got, tt.differ)
			}
		})
	}
}
