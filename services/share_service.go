package services

import (
	"context"
	"fmt"
	"path"

	"github.com/smk-kristen-pedan/order-tracker/utils"
)

// SharedFile describes a file handed to the customer
type SharedFile struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

// Sharer makes a generated file available to the client and returns where to fetch it
type Sharer interface {
	Share(ctx context.Context, name, mimeType string, content []byte) (SharedFile, error)
}

// LocalSharer writes files under Dir; they are served from /api/v1/exports/:filename
type LocalSharer struct {
	Dir string
}

// NewLocalSharer creates a sharer writing to dir
func NewLocalSharer(dir string) *LocalSharer {
	return &LocalSharer{Dir: dir}
}

// Share saves content to disk and returns its download path
func (s *LocalSharer) Share(ctx context.Context, name, mimeType string, content []byte) (SharedFile, error) {
	if _, err := utils.SaveFile(s.Dir, name, content); err != nil {
		return SharedFile{}, err
	}
	return SharedFile{
		Name:     name,
		MimeType: mimeType,
		URL:      utils.GetExportURL(name),
		Size:     len(content),
	}, nil
}

// S3SharePrefix is the key prefix for shared files in the bucket
const S3SharePrefix = "exports/"

// S3Sharer uploads files to S3 and returns a presigned download URL
type S3Sharer struct {
	s3Service S3Interface
}

// NewS3Sharer creates a sharer backed by s3Service
func NewS3Sharer(s3Service S3Interface) *S3Sharer {
	return &S3Sharer{s3Service: s3Service}
}

// Share uploads content and presigns a link valid for PresignExpiry
func (s *S3Sharer) Share(ctx context.Context, name, mimeType string, content []byte) (SharedFile, error) {
	if err := utils.ValidateFilename(name); err != nil {
		return SharedFile{}, err
	}

	key := path.Join(S3SharePrefix, name)
	if err := s.s3Service.PutObject(ctx, key, content, mimeType); err != nil {
		return SharedFile{}, fmt.Errorf("failed to share %s: %w", name, err)
	}

	url, err := s.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return SharedFile{}, fmt.Errorf("failed to share %s: %w", name, err)
	}

	return SharedFile{Name: name, MimeType: mimeType, URL: url, Size: len(content)}, nil
}
