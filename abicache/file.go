package abicache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/tranvictor/calldata/codec"
)

// FileCache persists ABI JSON to a single JSON file, rewritten on every Set.
type FileCache struct {
	path string
	mu   sync.Mutex
	data *fileData
}

var _ Cache = (*FileCache)(nil)

type fileData struct {
	Data map[string]string `json:"Data"`
}

// NewFileCache opens path lazily. A missing or unreadable file starts an
// empty cache.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// DefaultPath is ~/.calldata/cache.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".calldata", "cache.json")
	}
	return filepath.Join(home, ".calldata", "cache.json")
}

func (f *FileCache) load() *fileData {
	if f.data != nil {
		return f.data
	}
	f.data = &fileData{Data: map[string]string{}}
	content, err := os.ReadFile(f.path)
	if err != nil {
		return f.data
	}
	if err := json.Unmarshal(content, f.data); err != nil || f.data.Data == nil {
		f.data = &fileData{Data: map[string]string{}}
	}
	return f.data
}

func (f *FileCache) persist() error {
	content, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, content, 0o644)
}

func (f *FileCache) Get(address string) (codec.ABI, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, found := f.load().Data[Key(address)]
	if !found {
		return nil, false
	}
	a, err := codec.ParseABIString(value)
	if err != nil {
		return nil, false
	}
	return a, true
}

func (f *FileCache) Set(address string, a codec.ABI) error {
	value, err := a.JSON()
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.load().Data[Key(address)] = value
	return f.persist()
}
