package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem manifests and session journals are read from.

type FileSystemRepository interface {
	afero.Fs
}
