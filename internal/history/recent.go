// Package history remembers the datasets a user opened recently so the
// dashboard can offer them again.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RecentDataset represents a recently opened dataset.
type RecentDataset struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`
	// Encoding is the charset the file was read with.
	Encoding string `json:"encoding,omitempty"`
	// Rows is the row count at the last load.
	Rows int `json:"rows"`
	// LastUsed is when the dataset was last opened.
	LastUsed time.Time `json:"last_used"`
}

// Recent manages the list of recently opened datasets.
type Recent struct {
	// Datasets is sorted by last use, newest first.
	Datasets []RecentDataset `json:"datasets"`

	path string
}

const (
	// MaxRecent is the maximum number of datasets to remember.
	MaxRecent = 10
	// RecentFile is the file name for storing recent datasets.
	RecentFile = "recent.json"
)

// UserDir returns the path to the user's districtboard directory
// (~/.districtboard).
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".districtboard"), nil
}

// DefaultPath returns the path to the recent datasets file.
func DefaultPath() (string, error) {
	userDir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, RecentFile), nil
}

// LoadDefault loads the list from DefaultPath. Without a home directory
// it returns an empty list that cannot be saved.
func LoadDefault() (*Recent, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Recent{}, nil
	}
	return Load(path)
}

// Load reads the list stored at path. A missing or corrupted file yields
// an empty list. Entries whose file no longer exists are dropped.
func Load(path string) (*Recent, error) {
	recent := &Recent{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return recent, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, recent); err != nil {
		// Start fresh rather than fail the dashboard on a bad history file.
		return &Recent{path: path}, nil
	}

	valid := make([]RecentDataset, 0, len(recent.Datasets))
	for _, d := range recent.Datasets {
		if _, err := os.Stat(d.Path); err == nil {
			valid = append(valid, d)
		}
	}
	recent.Datasets = valid
	return recent, nil
}

// Save writes the list back to the path it was loaded from.
func (r *Recent) Save() error {
	if r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0644)
}

// Add records that path was opened. Relative paths are made absolute.
func (r *Recent) Add(path, encoding string, rows int) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	now := time.Now()

	for i := range r.Datasets {
		if r.Datasets[i].Path == path {
			r.Datasets[i].LastUsed = now
			r.Datasets[i].Encoding = encoding
			r.Datasets[i].Rows = rows
			r.sortAndTrim()
			return
		}
	}

	r.Datasets = append(r.Datasets, RecentDataset{
		Path:     path,
		Encoding: encoding,
		Rows:     rows,
		LastUsed: now,
	})
	r.sortAndTrim()
}

// sortAndTrim sorts datasets by last use (newest first) and trims to max.
func (r *Recent) sortAndTrim() {
	sort.SliceStable(r.Datasets, func(i, j int) bool {
		return r.Datasets[i].LastUsed.After(r.Datasets[j].LastUsed)
	})
	if len(r.Datasets) > MaxRecent {
		r.Datasets = r.Datasets[:MaxRecent]
	}
}

// Paths returns the paths of all recent datasets.
func (r *Recent) Paths() []string {
	paths := make([]string, len(r.Datasets))
	for i, d := range r.Datasets {
		paths[i] = d.Path
	}
	return paths
}
