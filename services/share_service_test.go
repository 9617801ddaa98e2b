package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smk-kristen-pedan/order-tracker/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSharer(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sharer := NewLocalSharer(dir)

	shared, err := sharer.Share(context.Background(), "pesanan-1.pdf", "application/pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.Equal(t, "pesanan-1.pdf", shared.Name)
	assert.Equal(t, "application/pdf", shared.MimeType)
	assert.Equal(t, "/api/v1/exports/pesanan-1.pdf", shared.URL)
	assert.Equal(t, 8, shared.Size)

	content, err := os.ReadFile(filepath.Join(dir, "pesanan-1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(content))
}

func TestLocalSharerRejectsUnsafeNames(t *testing.T) {
	sharer := NewLocalSharer(t.TempDir())

	for _, name := range []string{"", "../secret.pdf", "a/b.pdf", "script.sh"} {
		_, err := sharer.Share(context.Background(), name, "application/pdf", []byte("x"))
		var fileErr *utils.FileError
		assert.True(t, errors.As(err, &fileErr), "name %q should be rejected", name)
	}
}

func TestS3Sharer(t *testing.T) {
	mockS3 := NewMockS3Service()
	sharer := NewS3Sharer(mockS3)

	shared, err := sharer.Share(context.Background(), "pesanan-1.pdf", "application/pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.True(t, mockS3.FileExists("exports/pesanan-1.pdf"))
	assert.Equal(t, "application/pdf", mockS3.ContentType("exports/pesanan-1.pdf"))
	assert.Equal(t, "https://test-bucket.s3.ap-southeast-3.amazonaws.com/exports/pesanan-1.pdf?mock=true", shared.URL)
}

func TestS3SharerUploadFailure(t *testing.T) {
	mockS3 := NewMockS3Service()
	mockS3.PutErr = errors.New("access denied")
	sharer := NewS3Sharer(mockS3)

	_, err := sharer.Share(context.Background(), "pesanan-1.pdf", "application/pdf", []byte("x"))
	assert.ErrorContains(t, err, "access denied")
}

func TestS3SharerRejectsTraversal(t *testing.T) {
	mockS3 := NewMockS3Service()
	sharer := NewS3Sharer(mockS3)

	_, err := sharer.Share(context.Background(), "../state/order-storage.pdf", "application/pdf", []byte("x"))
	assert.Error(t, err)
	assert.False(t, mockS3.FileExists("state/order-storage.pdf"))
}
