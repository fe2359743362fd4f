package dataset

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/evangorrell/NBA-Rookie-Value-Analysis/internal/season"
)

// SnapshotKey identifies one historical build. Every parameter that affects
// the output participates in the hash, so changing the games threshold or a
// metric definition invalidates the snapshot instead of silently reusing it.
type SnapshotKey struct {
	Seasons       []season.Season
	Reference     season.Season
	MinGames      int
	InflationRate float64
	RateMetric    string
	VolumeMetric  string
}

// Hash returns a short content hash of the key.
func (k SnapshotKey) Hash() string {
	labels := make([]string, len(k.Seasons))
	for i, s := range k.Seasons {
		labels[i] = s.String()
	}
	material := fmt.Sprintf("seasons=%s ref=%s min_games=%d inflation=%g rate=%s volume=%s",
		strings.Join(labels, ","), k.Reference, k.MinGames, k.InflationRate, k.RateMetric, k.VolumeMetric)
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:4])
}

// Snapshots is the on-disk store for historical datasets. A snapshot is
// written at most once per key; presence short-circuits all fetching.
type Snapshots struct {
	dir    string
	logger *slog.Logger
}

// NewSnapshots creates a snapshot store rooted at dir.
func NewSnapshots(dir string, logger *slog.Logger) *Snapshots {
	if logger == nil {
		logger = slog.Default()
	}
	return &Snapshots{dir: dir, logger: logger}
}

// Path returns the snapshot file for a key. The name keeps the readable
// season-range prefix of the original layout plus the content hash.
func (s *Snapshots) Path(key SnapshotKey) string {
	first, last := "none", "none"
	if len(key.Seasons) > 0 {
		first = key.Seasons[0].String()
		last = key.Seasons[len(key.Seasons)-1].String()
	}
	name := fmt.Sprintf("historical_data_%s_to_%s_for_%s_%s.gob", first, last, key.Reference, key.Hash())
	return filepath.Join(s.dir, name)
}

// Load reads the snapshot for a key if it exists.
func (s *Snapshots) Load(key SnapshotKey) (Dataset, bool) {
	f, err := os.Open(s.Path(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var ds Dataset
	if err := gob.NewDecoder(f).Decode(&ds); err != nil {
		s.logger.Warn("Corrupt historical snapshot ignored", "file", s.Path(key), "error", err)
		return nil, false
	}
	return ds, true
}

// Save writes the snapshot for a key.
func (s *Snapshots) Save(key SnapshotKey, ds Dataset) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.Create(s.Path(key))
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(ds); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
