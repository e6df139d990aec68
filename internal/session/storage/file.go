package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/radieske/paris-web-client/internal/session"
)

// ErrCorrupt indica um arquivo de armazenamento que não é um objeto JSON válido
var ErrCorrupt = errors.New("storage: corrupt file")

var _ session.TokenStore = (*FileStore)(nil)

// FileStore é um armazenamento chave/valor em um único arquivo JSON,
// o equivalente local do localStorage do navegador
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path devolve o caminho do arquivo
func (f *FileStore) Path() string { return f.path }

// Get devolve o valor da chave; ok=false quando ausente
func (f *FileStore) Get(key string) (value string, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if err != nil {
		return "", false, err
	}
	value, ok = m[key]
	return value, ok, nil
}

// Set grava a chave, reescrevendo o arquivo de forma atômica
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		m = map[string]string{}
	} else if err != nil {
		return err
	}
	m[key] = value
	return f.write(m)
}

// Remove apaga a chave; remover uma chave ausente não é erro
func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.read()
	if errors.Is(err, ErrCorrupt) {
		return f.write(map[string]string{})
	} else if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return f.write(m)
}

func (f *FileStore) Load(context.Context) (string, error) {
	v, _, err := f.Get(session.StorageKey)
	return v, err
}

func (f *FileStore) Save(_ context.Context, token string) error {
	return f.Set(session.StorageKey, token)
}

func (f *FileStore) Clear(context.Context) error {
	return f.Remove(session.StorageKey)
}

func (f *FileStore) read() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	m := map[string]string{}
	if len(b) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, f.path)
	}
	return m, nil
}

// write grava em arquivo temporário no mesmo diretório e renomeia
func (f *FileStore) write(m map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
