package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		code     string
	}{
		{"valid pdf", "pesanan_1.pdf", ""},
		{"valid xlsx uppercase", "RIWAYAT.XLSX", ""},
		{"valid html", "pesanan.html", ""},
		{"empty", "", "INVALID_REQUEST"},
		{"traversal", "../secret.pdf", "INVALID_FILENAME"},
		{"slash", "a/b.pdf", "INVALID_FILENAME"},
		{"backslash", "a\\b.pdf", "INVALID_FILENAME"},
		{"png", "photo.png", "INVALID_FILE_TYPE"},
		{"no extension", "pesanan", "INVALID_FILE_TYPE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}

			var fileErr *FileError
			require.True(t, errors.As(err, &fileErr))
			assert.Equal(t, tt.code, fileErr.Code)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ContentType("a.xlsx"))
	assert.Equal(t, "application/octet-stream", ContentType("a.bin"))
}

func TestSaveFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := SaveFile(dir, "pesanan.pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pesanan.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(content))
}

func TestSaveFileRejectsInvalidName(t *testing.T) {
	_, err := SaveFile(t.TempDir(), "../pesanan.pdf", []byte("x"))
	assert.Error(t, err)
}

func TestSaveFileTooLarge(t *testing.T) {
	_, err := SaveFile(t.TempDir(), "big.pdf", make([]byte, MaxFileSize+1))

	var fileErr *FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "FILE_TOO_LARGE", fileErr.Code)
}

func TestGetExportURL(t *testing.T) {
	assert.Equal(t, "/api/v1/exports/pesanan.pdf", GetExportURL("pesanan.pdf"))
	assert.Equal(t, "", GetExportURL(""))
}
