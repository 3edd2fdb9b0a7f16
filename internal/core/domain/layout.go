package domain

import "path/filepath"

const (
	// WorkDirName is the name of the internal workspace directory.
	WorkDirName = ".ormwire"

	// CacheDirName is the name of the compiled graph cache directory.
	CacheDirName = "cache"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultCachePath returns the default path for the compiled graph cache.
// It joins .ormwire and cache.
func DefaultCachePath() string {
	return filepath.Join(WorkDirName, CacheDirName)
}
