package cache

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/matzehuels/cobolgraph/pkg/config"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes the hex BLAKE3-256 digest of data.
func Hash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// UnitKey returns the cache key for one unit. It changes whenever the unit
// name, its source path or fingerprint, the tool version, any configuration
// that shapes the unit's artifacts, or one of deps changes. deps identify the
// copybooks the unit was expanded with. Output locations, workers and the
// log level are not part of the key.
func UnitKey(unit, sourcePath, fingerprint, version string, cfg config.Config, deps ...string) string {
	return hashKey("unit", unit, sourcePath, fingerprint, version,
		cfg.Normalize, cfg.Structure, cfg.Analysis, cfg.Graph, cfg.Render, cfg.Copybook, deps)
}
