package filestorage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/harshit2704/capture-sync/env"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)

type fsFileStorage struct {
	rootPath string
}

func NewFSStorage() (FileStorage, error) {
	rootPath, err := env.Get(env.FSRootPath)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(rootPath, 0700); err != nil {
		return nil, err
	}

	return &fsFileStorage{
		rootPath: rootPath,
	}, nil
}

func (f *fsFileStorage) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	file, err := os.OpenFile(f.getFilePath(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return file, nil
}

func (f *fsFileStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	file, err := os.OpenFile(f.getFilePath(name), os.O_RDONLY, 0600)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (f *fsFileStorage) Exists(ctx context.Context, name string) (bool, error) {
	info, err := os.Stat(f.getFilePath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *fsFileStorage) getFilePath(name string) string {
	return filepath.Join(f.rootPath, name)
}
