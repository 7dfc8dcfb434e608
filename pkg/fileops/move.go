package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"syscall"
)

// ErrDestinationExists is returned by Move when the destination path is
// already occupied. Moves never overwrite.
var ErrDestinationExists = errors.New("destination already exists")

// EnsureDirectoryExists creates a directory and all necessary parents.
// Equivalent to `mkdir -p` and safe to call repeatedly.
func EnsureDirectoryExists(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// Move relocates a file, creating intermediate destination directories as
// needed. The rename is atomic on a single filesystem; across filesystems it
// falls back to copy-then-remove. An existing destination is an error.
func Move(srcPath, destPath string) error {
	if _, err := os.Lstat(destPath); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, destPath)
	}

	if err := EnsureDirectoryExists(filepath.Dir(destPath)); err != nil {
		return err
	}

	err := os.Rename(srcPath, destPath)
	if err == nil {
		return nil
	}
	if isCrossDevice(err) {
		return copyAndRemove(srcPath, destPath)
	}
	return fmt.Errorf("failed to move %s: %w", srcPath, err)
}

// isCrossDevice reports whether a rename failed because source and
// destination live on different filesystems.
func isCrossDevice(err error) bool {
	if runtime.GOOS == "windows" {
		var linkErr *os.LinkError
		return errors.As(err, &linkErr)
	}
	return errors.Is(err, syscall.EXDEV)
}

// copyAndRemove emulates a move across filesystems: copy to a temporary file
// beside the destination, sync, rename into place, then remove the source.
func copyAndRemove(srcPath, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	tempPath := destPath + ".tmp"
	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	var copySuccess bool
	defer func() {
		tempFile.Close()
		if !copySuccess {
			os.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	copySuccess = true

	if err := os.Remove(srcPath); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}
