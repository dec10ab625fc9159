package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/harshit2704/capture-sync/internal/services/filestorage"
)

// FileStorage is an in-memory filestorage.FileStorage.
type FileStorage struct {
	locker sync.Mutex
	files  map[string][]byte
}

var _ filestorage.FileStorage = (*FileStorage)(nil)

func NewFileStorage() *FileStorage {
	return &FileStorage{
		files: make(map[string][]byte),
	}
}

func (f *FileStorage) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	f.locker.Lock()
	defer f.locker.Unlock()

	if _, ok := f.files[name]; ok {
		return nil, filestorage.ErrAlreadyExists
	}
	f.files[name] = nil

	return &memFile{storage: f, name: name}, nil
}

func (f *FileStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	f.locker.Lock()
	defer f.locker.Unlock()

	content, ok := f.files[name]
	if !ok {
		return nil, filestorage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *FileStorage) Exists(ctx context.Context, name string) (bool, error) {
	f.locker.Lock()
	defer f.locker.Unlock()

	_, ok := f.files[name]
	return ok, nil
}

// Put stores content directly, bypassing Create.
func (f *FileStorage) Put(name string, content []byte) {
	f.locker.Lock()
	defer f.locker.Unlock()
	f.files[name] = content
}

type memFile struct {
	storage *FileStorage
	name    string
	buffer  bytes.Buffer
}

func (m *memFile) Write(p []byte) (int, error) {
	return m.buffer.Write(p)
}

func (m *memFile) Close() error {
	m.storage.locker.Lock()
	defer m.storage.locker.Unlock()
	m.storage.files[m.name] = m.buffer.Bytes()
	return nil
}
