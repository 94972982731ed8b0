package journal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
	"github.com/rfdevuser/InventoryManagement/internal/metrics"
)

// Store persists submissions durably.
type Store interface {
	SaveSubmission(ctx context.Context, entry models.SubmissionEntry) error
}

// Mirror copies submissions to a secondary, human-facing destination.
type Mirror interface {
	AppendSubmission(ctx context.Context, entry models.SubmissionEntry) error
}

// Service journals successful fabric submissions into every configured sink.
type Service struct {
	store  Store
	mirror Mirror
	logger *zap.Logger
}

// NewService wires a journal. store and mirror may each be nil.
func NewService(store Store, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, mirror: mirror, logger: logger}
}

// RecordSubmission writes entry to all sinks and joins their failures.
func (s *Service) RecordSubmission(ctx context.Context, entry models.SubmissionEntry) error {
	var errs []error

	if s.store != nil {
		if err := s.store.SaveSubmission(ctx, entry); err != nil {
			metrics.JournalErrorsTotal.WithLabelValues("mongodb").Inc()
			errs = append(errs, fmt.Errorf("store submission: %w", err))
		}
	}

	if s.mirror != nil {
		if err := s.mirror.AppendSubmission(ctx, entry); err != nil {
			metrics.JournalErrorsTotal.WithLabelValues("sheets").Inc()
			errs = append(errs, fmt.Errorf("mirror submission: %w", err))
		}
	}

	if len(errs) == 0 {
		s.logger.Debug("submission journaled", zap.String("qr_code_url", entry.QRCodeURL))
	}
	return errors.Join(errs...)
}
