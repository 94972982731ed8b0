// Package printsurface renders print popups into HTTP responses.
//
// A surface is bound to one response writer. It counts as loaded once the QR
// image it embeds has been fetched successfully, and printing writes the
// document together with a script that prints and closes the popup.
package printsurface

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/service/printing"
)

// ErrTooManySurfaces indicates the limit of concurrently open print surfaces was reached.
var ErrTooManySurfaces = errors.New("too many open print surfaces")

const autoPrintScript = `<script>window.onload = function () { window.print(); window.close(); };</script>`

// Opener hands out print surfaces bound to HTTP responses.
type Opener struct {
	httpClient *resty.Client
	slots      chan struct{}
	logger     *zap.Logger
}

// NewOpener builds an opener allowing cfg.MaxSurfaces surfaces at a time.
func NewOpener(cfg config.PrintConfig, logger *zap.Logger) *Opener {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxSurfaces := cfg.MaxSurfaces
	if maxSurfaces <= 0 {
		maxSurfaces = 1
	}
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Opener{
		httpClient: resty.New().SetTimeout(timeout),
		slots:      make(chan struct{}, maxSurfaces),
		logger:     logger,
	}
}

// Bind returns a SurfaceOpener whose surfaces write into w.
func (o *Opener) Bind(w io.Writer) printing.SurfaceOpener {
	return boundOpener{opener: o, w: w}
}

type boundOpener struct {
	opener *Opener
	w      io.Writer
}

func (b boundOpener) Open(ctx context.Context, width, height int) (printing.Surface, error) {
	select {
	case b.opener.slots <- struct{}{}:
	default:
		return nil, ErrTooManySurfaces
	}

	return &Surface{
		ctx:    ctx,
		opener: b.opener,
		w:      b.w,
		width:  width,
		height: height,
	}, nil
}

// Surface is a print popup rendered into an HTTP response.
type Surface struct {
	ctx    context.Context
	opener *Opener
	w      io.Writer
	width  int
	height int

	mu       sync.Mutex
	doc      *printing.Document
	loadOnce sync.Once
	loaded   chan error
	closed   bool
	release  sync.Once
}

// Size returns the surface dimensions requested when it was opened.
func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

// Write stores the document to be printed.
func (s *Surface) Write(doc printing.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("print surface closed")
	}
	s.doc = &doc
	return nil
}

// Loaded starts fetching the embedded image on first call and reports its outcome.
func (s *Surface) Loaded() <-chan error {
	s.loadOnce.Do(func() {
		s.loaded = make(chan error, 1)

		s.mu.Lock()
		doc := s.doc
		s.mu.Unlock()

		if doc == nil {
			s.loaded <- errors.New("nothing written to print surface")
			return
		}
		go func() {
			s.loaded <- s.opener.probe(s.ctx, doc.ImageURL)
		}()
	})
	return s.loaded
}

// Print writes the document with an auto-print script into the response.
func (s *Surface) Print() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("print surface closed")
	}
	if s.doc == nil {
		return errors.New("nothing written to print surface")
	}

	markup := injectScript(s.doc.Markup)
	if _, err := s.w.Write(markup); err != nil {
		return fmt.Errorf("write print surface: %w", err)
	}
	return nil
}

// Close releases the surface slot. It is safe to call more than once.
func (s *Surface) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.release.Do(func() { <-s.opener.slots })
	return nil
}

func (o *Opener) probe(ctx context.Context, imageURL string) error {
	if strings.HasPrefix(imageURL, "data:image/") {
		return nil
	}

	resp, err := o.httpClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(imageURL)
	if err != nil {
		return fmt.Errorf("fetch qr image: %w", err)
	}
	if body := resp.RawBody(); body != nil {
		_, _ = io.Copy(io.Discard, body)
		_ = body.Close()
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("fetch qr image: status %d", resp.StatusCode())
	}

	o.logger.Debug("qr image loaded", zap.String("url", imageURL))
	return nil
}

func injectScript(markup []byte) []byte {
	idx := bytes.LastIndex(markup, []byte("</body>"))
	if idx < 0 {
		return append(append([]byte{}, markup...), autoPrintScript...)
	}

	out := make([]byte, 0, len(markup)+len(autoPrintScript))
	out = append(out, markup[:idx]...)
	out = append(out, autoPrintScript...)
	out = append(out, markup[idx:]...)
	return out
}
