package secretshare

import (
	"os"
)

// StorageBackend persists the keeper's encrypted envelope. Implementations
// see only ciphertext.
type StorageBackend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStorage stores the envelope in a single file with owner-only
// permissions.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (fs *FileStorage) Load() ([]byte, error) {
	return os.ReadFile(fs.path)
}

func (fs *FileStorage) Save(data []byte) error {
	return os.WriteFile(fs.path, data, 0600)
}

// MemStorage keeps the envelope in memory. It backs tests and throwaway
// keepers.
type MemStorage struct {
	data []byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

func (ms *MemStorage) Load() ([]byte, error) {
	if ms.data == nil {
		return nil, os.ErrNotExist
	}
	return ms.data, nil
}

func (ms *MemStorage) Save(data []byte) error {
	ms.data = append([]byte(nil), data...)
	return nil
}
