package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// FileStore abstracts the on-disk image storage. All paths are relative to
// the storage root so the root can be relocated without rewriting records.
type FileStore interface {
	Write(relPath string, data []byte) error
	Read(relPath string) ([]byte, error)
	Delete(relPath string) error
	FreeSpace() (uint64, error)
}

type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %v", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %v", err)
	}
	return &DiskStore{root: abs}, nil
}

func (s *DiskStore) Root() string {
	return s.root
}

// resolve joins relPath under the root and rejects anything that would
// escape it.
func (s *DiskStore) resolve(relPath string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if full != s.root && !strings.HasPrefix(full, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes storage root: %s", relPath)
	}
	return full, nil
}

func (s *DiskStore) Write(relPath string, data []byte) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create upload folder: %v", err)
	}
	return os.WriteFile(full, data, 0o644)
}

func (s *DiskStore) Read(relPath string) ([]byte, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(full)
}

func (s *DiskStore) Delete(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

// FreeSpace reports the bytes available to unprivileged writes on the
// filesystem holding the storage root.
func (s *DiskStore) FreeSpace() (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(s.root, &stat); err != nil {
		return 0, fmt.Errorf("failed to stat storage root: %v", err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
