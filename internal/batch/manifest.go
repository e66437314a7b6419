package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// WriteManifest writes the results to path as JSON. Image paths are made
// relative to the manifest.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{Name: r.Name, Error: r.Error}
		if r.Success {
			e.Image = r.Path
			if rel, err := filepath.Rel(dir, r.Path); err == nil {
				e.Image = filepath.ToSlash(rel)
			}
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
