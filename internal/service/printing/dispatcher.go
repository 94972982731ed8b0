package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/metrics"
)

// Fixed popup size for the print surface.
const (
	SurfaceWidth  = 600
	SurfaceHeight = 600
)

var (
	// ErrNoQRAvailable indicates there is no QR code URL to print yet.
	ErrNoQRAvailable = errors.New("no qr code available")

	// ErrPrintWindowBlocked indicates the print surface could not be opened.
	ErrPrintWindowBlocked = errors.New("print window blocked")
)

// User-facing notifications.
const (
	MessageNoQRAvailable = "No QR code available to print."
	MessageWindowBlocked = "Failed to open print window."
)

// Surface is a secondary rendering context used to print one document.
type Surface interface {
	Write(doc Document) error
	// Loaded yields once, with nil when the embedded content finished loading.
	Loaded() <-chan error
	Print() error
	Close() error
}

// SurfaceOpener opens print surfaces.
type SurfaceOpener interface {
	Open(ctx context.Context, width, height int) (Surface, error)
}

// Dispatcher prints QR code images on freshly opened surfaces.
type Dispatcher struct {
	logger *zap.Logger
}

// NewDispatcher wires a new print dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{logger: logger}
}

// PrintQR opens one surface, writes the QR document and prints it once the surface has loaded.
func (d *Dispatcher) PrintQR(ctx context.Context, opener SurfaceOpener, qrCodeURL string) error {
	if strings.TrimSpace(qrCodeURL) == "" {
		metrics.PrintsTotal.WithLabelValues(metrics.OutcomeNoQRCode).Inc()
		return ErrNoQRAvailable
	}

	doc, err := RenderDocument(qrCodeURL)
	if err != nil {
		return err
	}

	surface, err := opener.Open(ctx, SurfaceWidth, SurfaceHeight)
	if err != nil || surface == nil {
		metrics.PrintsTotal.WithLabelValues(metrics.OutcomeBlocked).Inc()
		d.logger.Warn("print surface could not be opened", zap.Error(err))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPrintWindowBlocked, err)
		}
		return ErrPrintWindowBlocked
	}
	defer func() {
		if err := surface.Close(); err != nil {
			d.logger.Debug("closing print surface failed", zap.Error(err))
		}
	}()

	if err := surface.Write(doc); err != nil {
		metrics.PrintsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		return fmt.Errorf("write print document: %w", err)
	}

	select {
	case err := <-surface.Loaded():
		if err != nil {
			metrics.PrintsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
			return fmt.Errorf("load print surface: %w", err)
		}
	case <-ctx.Done():
		metrics.PrintsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		return ctx.Err()
	}

	if err := surface.Print(); err != nil {
		metrics.PrintsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		return fmt.Errorf("print qr code: %w", err)
	}

	metrics.PrintsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	d.logger.Debug("qr code printed", zap.String("qr_code_url", qrCodeURL))
	return nil
}

// UserMessage maps a dispatcher error to the notification shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoQRAvailable):
		return MessageNoQRAvailable
	case errors.Is(err, ErrPrintWindowBlocked):
		return MessageWindowBlocked
	default:
		return "Failed to print QR code."
	}
}
