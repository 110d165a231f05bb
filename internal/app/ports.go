package app

import (
	"context"
	"io/fs"

	"e2fn/internal/domain"
)

type FileSystem interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	CopyFile(src, dst string) (int64, error)
	Checksum(path string) (string, error)
}

type MetadataReader interface {
	CaptureTime(ctx context.Context, path string) (domain.CaptureTime, error)
}
