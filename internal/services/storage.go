package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type StorageService interface {
	SaveResume(data []byte, originalName string) (string, string, error)
	ReadResume(location string) ([]byte, error)
	DeleteResume(location string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveResume stores the uploaded bytes under a unique name and returns
// the generated filename and its location.
func (s *storageService) SaveResume(data []byte, originalName string) (string, string, error) {
	// Validate file extension
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext != ".pdf" {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("resume_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", "", fmt.Errorf("failed to save resume: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) ReadResume(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return data, nil
}

func (s *storageService) DeleteResume(location string) error {
	if err := os.Remove(location); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}
