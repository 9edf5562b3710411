package storage

import (
	"context"
	"encoding/json"
	"os"
	"sync"
)

// File keeps the whole key→document map in one JSON file, the server-side
// stand-in for browser local storage. Every Set rewrites the full file;
// a corrupt or missing file reads as empty rather than failing.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := f.load()
	v, ok := docs[key]
	return v, ok, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := f.load()
	docs[key] = value
	return f.flush(docs)
}

func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	docs := f.load()
	if _, ok := docs[key]; !ok {
		return nil
	}
	delete(docs, key)
	return f.flush(docs)
}

func (f *File) load() map[string]string {
	docs := make(map[string]string)
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return docs
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return make(map[string]string)
	}
	return docs
}

func (f *File) flush(docs map[string]string) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, raw, 0o644)
}
