package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"radio-playlist/scraper"
)

// FileStorage keeps the latest playlist snapshot as an indented JSON file.
// The file's modification time is the snapshot's age.
type FileStorage struct {
	mu       sync.Mutex
	filePath string
}

func NewFileStorage(filePath string) (*FileStorage, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return nil, err
	}
	return &FileStorage{filePath: filePath}, nil
}

// Load returns the stored snapshot and when it was written. A missing file
// yields a nil snapshot and no error.
func (s *FileStorage) Load() (*scraper.PlaylistSnapshot, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}

	var snapshot scraper.PlaylistSnapshot
	if err := json.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, time.Time{}, err
	}
	if snapshot.Songs == nil {
		snapshot.Songs = []scraper.Song{}
	}

	return &snapshot, info.ModTime(), nil
}

// Save replaces the stored snapshot. The file is written next to the target
// and renamed so readers never see a partial document.
func (s *FileStorage) Save(snapshot *scraper.PlaylistSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".playlist-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snapshot); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.filePath)
}
