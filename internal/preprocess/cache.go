package preprocess

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheDirName is the directory under the OS temp dir where processed
// receipt images are written when no explicit cache dir is configured.
const DefaultCacheDirName = "fundora-receipts"

// CacheDir resolves the scoped cache directory for processed images, creating
// it if needed. Files written here are never deleted by this package; the
// host is expected to sweep stale entries periodically.
func CacheDir(configured string) (string, error) {
	dir := configured
	if dir == "" {
		dir = filepath.Join(os.TempDir(), DefaultCacheDirName)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return dir, nil
}

// uniqueName builds a collision-free filename for a cache artifact. The
// timestamp keeps names sortable; the uuid fragment guards against two scans
// landing on the same nanosecond.
func uniqueName(prefix, ext string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().UnixNano(), id, ext)
}
