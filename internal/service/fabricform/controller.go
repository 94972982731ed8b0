package fabricform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
	"github.com/rfdevuser/InventoryManagement/internal/metrics"
)

// Mutator issues the insertFabricDetails mutation.
type Mutator interface {
	InsertFabricDetails(ctx context.Context, input models.FabricInput) (*models.InsertFabricResult, error)
}

// Recorder journals successful submissions.
type Recorder interface {
	RecordSubmission(ctx context.Context, entry models.SubmissionEntry) error
}

// Listener receives a state snapshot after every change.
type Listener func(models.FormState)

// Controller owns the state of one fabric entry form.
type Controller struct {
	id       string
	mutator  Mutator
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time

	mu         sync.Mutex
	form       models.FabricForm
	qrCodeURL  string
	submitting bool
	message    string
	lastErr    error
	closed     bool
	lastSeen   time.Time

	listeners    map[int]Listener
	nextListener int
}

// NewController builds an empty form controller. recorder may be nil.
func NewController(id string, mutator Mutator, recorder Recorder, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		id:        id,
		mutator:   mutator,
		recorder:  recorder,
		logger:    logger.With(zap.String("session_id", id)),
		now:       time.Now,
		listeners: make(map[int]Listener),
	}
	c.lastSeen = c.now()
	return c
}

// ID returns the session identifier the controller was created with.
func (c *Controller) ID() string {
	return c.id
}

// State returns a snapshot of the current form state.
func (c *Controller) State() models.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn for state-change notifications and returns a func removing it.
func (c *Controller) Subscribe(fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// UpdateField replaces a single field value. No validation happens here.
func (c *Controller) UpdateField(name, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if err := c.form.Set(name, value); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	c.lastSeen = c.now()
	c.notifyAndUnlock()
	return nil
}

// Submit coerces and validates the form, then sends the insert mutation.
// The mutation is the only blocking call and runs without holding the state lock.
func (c *Controller) Submit(ctx context.Context) (models.FormState, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return models.FormState{}, ErrControllerClosed
	}
	c.lastSeen = c.now()

	if c.submitting {
		snapshot := c.snapshotLocked()
		c.mu.Unlock()
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return snapshot, ErrSubmitInFlight
	}

	input, err := Coerce(c.form)
	if err != nil {
		c.lastErr = err
		c.message = UserMessage(err)
		snapshot := c.snapshotLocked()
		c.notifyAndUnlock()
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return snapshot, err
	}

	c.submitting = true
	c.lastErr = nil
	c.message = ""
	c.notifyAndUnlock()

	start := time.Now()
	result, callErr := c.mutator.InsertFabricDetails(ctx, input)
	metrics.MutationDuration.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	c.submitting = false
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding mutation response for closed form", zap.Error(callErr))
		return models.FormState{}, ErrControllerClosed
	}

	switch {
	case callErr != nil:
		c.logger.Error("error submitting the form", zap.Error(callErr))
		err = fmt.Errorf("%w: %w", ErrSubmission, callErr)
	case result == nil || result.QRCodeURL == "":
		c.logger.Warn("mutation returned no qr code url")
		err = fmt.Errorf("%w: response carried no qrCodeUrl", ErrSubmission)
	}

	if err != nil {
		c.lastErr = err
		c.message = UserMessage(err)
		snapshot := c.snapshotLocked()
		c.notifyAndUnlock()
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFault).Inc()
		return snapshot, err
	}

	c.qrCodeURL = result.QRCodeURL
	c.lastErr = nil
	c.message = MessageSubmitted
	snapshot := c.snapshotLocked()
	c.notifyAndUnlock()
	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()

	c.logger.Info("fabric submitted",
		zap.String("fabric_type", input.FabricType),
		zap.String("qr_code_url", result.QRCodeURL))

	c.record(ctx, models.SubmissionEntry{
		Input:       input,
		QRCodeURL:   result.QRCodeURL,
		SessionID:   c.id,
		SubmittedAt: c.now().UTC(),
	})

	return snapshot, nil
}

// Close tears the controller down. Responses arriving afterwards are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.listeners = make(map[int]Listener)
}

// closeIfIdle closes the controller when it was last used before cutoff and
// no submission is outstanding. It reports whether the controller is closed.
func (c *Controller) closeIfIdle(cutoff time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	if c.submitting || !c.lastSeen.Before(cutoff) {
		return false
	}
	c.closed = true
	c.listeners = make(map[int]Listener)
	return true
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// IdleSince returns the time of the last user interaction.
func (c *Controller) IdleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// Busy reports whether a submission is outstanding.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) record(ctx context.Context, entry models.SubmissionEntry) {
	if c.recorder == nil {
		return
	}
	// The journal write must not inherit a request deadline that already fired.
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := c.recorder.RecordSubmission(recordCtx, entry); err != nil && !errors.Is(err, context.Canceled) {
		c.logger.Error("failed to journal submission", zap.Error(err))
	}
}

func (c *Controller) snapshotLocked() models.FormState {
	state := models.FormState{
		Fields:     c.form,
		QRCodeURL:  c.qrCodeURL,
		Submitting: c.submitting,
		Message:    c.message,
		Err:        c.lastErr,
	}
	if c.lastErr != nil {
		state.Error = c.lastErr.Error()
	}
	return state
}

// notifyAndUnlock releases the lock and delivers the snapshot outside of it.
func (c *Controller) notifyAndUnlock() {
	snapshot := c.snapshotLocked()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}
