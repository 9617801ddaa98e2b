package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smk-kristen-pedan/order-tracker/documents"
	"github.com/smk-kristen-pedan/order-tracker/models"
	"go.uber.org/zap"
)

// ErrExportFailed is the only export error returned to callers; the cause is logged
var ErrExportFailed = errors.New("failed to export order PDF")

// ExportService renders order documents and shares them
type ExportService struct {
	sharer Sharer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an export service sharing through sharer
func NewExportService(sharer Sharer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{sharer: sharer, logger: logger, now: time.Now}
}

// ExportFilename returns a unique file name for an order export
func ExportFilename(order models.Order, ext string) string {
	return fmt.Sprintf("pesanan-%s-%s%s", order.ID, uuid.New().String(), ext)
}

// ExportOrderPDF renders order as a PDF and shares it. Any failure is logged
// and reported as ErrExportFailed.
func (s *ExportService) ExportOrderPDF(ctx context.Context, order models.Order) (SharedFile, error) {
	pdf, err := documents.RenderPDF(order, s.now())
	if err != nil {
		s.logger.Error("Failed to render order PDF", zap.String("order_id", order.ID), zap.Error(err))
		return SharedFile{}, ErrExportFailed
	}

	shared, err := s.sharer.Share(ctx, ExportFilename(order, ".pdf"), "application/pdf", pdf)
	if err != nil {
		s.logger.Error("Failed to share order PDF", zap.String("order_id", order.ID), zap.Error(err))
		return SharedFile{}, ErrExportFailed
	}

	s.logger.Info("Order PDF exported",
		zap.String("order_id", order.ID),
		zap.String("file", shared.Name),
		zap.Int("size", shared.Size),
	)
	return shared, nil
}
