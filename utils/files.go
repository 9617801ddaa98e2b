package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// contentTypes lists the export formats that may be written and served
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".html": "text/html; charset=utf-8",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// FileError represents an export file validation error
type FileError struct {
	Code    string
	Message string
}

func (e *FileError) Error() string {
	return e.Message
}

// ValidateFilename rejects empty names, path traversal and unsupported extensions
func ValidateFilename(filename string) error {
	if filename == "" {
		return &FileError{Code: "INVALID_REQUEST", Message: "Filename is required"}
	}

	// Security: Prevent directory traversal attacks
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return &FileError{Code: "INVALID_FILENAME", Message: "Invalid filename"}
	}

	if _, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; !ok {
		return &FileError{Code: "INVALID_FILE_TYPE", Message: "Only PDF, HTML and XLSX files are supported"}
	}

	return nil
}

// ContentType returns the MIME type for a validated filename
func ContentType(filename string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SaveFile writes content to dir/filename and returns the full path
func SaveFile(dir, filename string, content []byte) (string, error) {
	if err := ValidateFilename(filename); err != nil {
		return "", err
	}

	if len(content) > MaxFileSize {
		return "", &FileError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Create export directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fullPath, nil
}

// GetExportURL returns the URL path for downloading an exported file
func GetExportURL(filename string) string {
	if filename == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/exports/%s", filename)
}
