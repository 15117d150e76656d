package tools

import (
	"os"
	"path/filepath"
)

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}

// Writes the file through a temporary sibling, so readers never observe a partial tile
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, err = tmpFile.Write(data)
	if closeErr := tmpFile.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, perm)
	}
	if err == nil {
		err = os.Rename(tmpPath, filePath)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func IsDirectory(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && info.IsDir()
}
