package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0o755
)

// Folder names below the user's home directory
const (
	DownloadsDirName = "Downloads"
	MediaDirName     = "YouTube"
)

// CreateDirectoryIfNotExists creates dirPath and its parents. An existing
// directory is not an error; a file in the way is.
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path is empty")
	}
	if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return fmt.Errorf("create directory %s: %w", dirPath, err)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// DefaultMediaDir returns ~/Downloads/YouTube, where downloads go unless the
// user picks another folder.
func DefaultMediaDir() (string, error) {
	downloads, err := GetHomeDownloadsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(downloads, MediaDirName), nil
}
