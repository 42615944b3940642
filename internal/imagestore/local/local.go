package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/planttracker/internal/imagestore"
)

type LocalImageStore struct {
	basePath string
}

func NewLocalImageStore(basePath string) (*LocalImageStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalImageStore{basePath: basePath}, nil
}

func (s *LocalImageStore) Put(ctx context.Context, key string, r io.Reader) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	// Write to a sibling temp file and rename so a concurrent Get sees either
	// the old image or the new one.
	f, err := os.CreateTemp(s.basePath, ".tmp-*"+filepath.Ext(key))
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		removeTemp(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		removeTemp(tmpPath)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

func (s *LocalImageStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%s: %w", key, imagestore.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(filePath), nil
}

func (s *LocalImageStore) Exists(ctx context.Context, key string) (bool, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Mode().IsRegular() && info.Size() > 0, nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *LocalImageStore) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt %q: %w", key, imagestore.ErrInvalidKey)
	}
	return absPath, nil
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to remove temp file", "path", path, "error", err)
	}
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
