package fabricform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

func TestSubmitEndToEnd(t *testing.T) {
	mutator := &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/y.png"}}
	recorder := &fakeRecorder{}
	c := NewController("s1", mutator, recorder, nil)
	fillForm(t, c, cottonForm())

	state, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, mutator.Calls(), 1)
	assert.Equal(t, models.FabricInput{
		FabricType:     "Cotton",
		Colour:         "Blue",
		Length:         10.0,
		Width:          2.5,
		Price:          1200.0,
		DateOfPurchase: "2024-01-01",
	}, mutator.Calls()[0])

	assert.Equal(t, "https://x/y.png", state.QRCodeURL)
	assert.Equal(t, MessageSubmitted, state.Message)
	assert.False(t, state.Submitting)
	assert.Equal(t, "https://x/y.png", c.State().QRCodeURL)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "s1", recorder.entries[0].SessionID)
	assert.Equal(t, "https://x/y.png", recorder.entries[0].QRCodeURL)
}

func TestSubmitValidationBlocksNetwork(t *testing.T) {
	for _, bad := range []string{"", "abc", "NaN", "1,5"} {
		t.Run(bad, func(t *testing.T) {
			mutator := &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/y.png"}}
			c := NewController("s", mutator, nil, nil)
			values := cottonForm()
			values[models.FieldWidth] = bad
			fillForm(t, c, values)

			state, err := c.Submit(context.Background())
			require.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, mutator.Calls())
			assert.Equal(t, MessageInvalidNumbers, state.Message)
			assert.Empty(t, state.QRCodeURL)
		})
	}
}

func TestSubmitFaultKeepsPreviousQRCode(t *testing.T) {
	mutator := &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/first.png"}}
	c := NewController("s", mutator, nil, nil)
	fillForm(t, c, cottonForm())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	mutator.result = nil
	mutator.err = errors.New("connection refused")

	state, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmission)
	assert.Equal(t, MessageSubmitFailed, state.Message)
	assert.Equal(t, "https://x/first.png", state.QRCodeURL)
	assert.Contains(t, state.Error, "connection refused")
}

func TestSubmitFaultWithoutPreviousQRCode(t *testing.T) {
	mutator := &fakeMutator{err: errors.New("boom")}
	c := NewController("s", mutator, nil, nil)
	fillForm(t, c, cottonForm())

	state, err := c.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmission)
	assert.Empty(t, state.QRCodeURL)
	assert.False(t, state.HasQRCode())
}

func TestSubmitWithoutUsableData(t *testing.T) {
	for name, result := range map[string]*models.InsertFabricResult{
		"nil result": nil,
		"empty url":  {},
	} {
		t.Run(name, func(t *testing.T) {
			recorder := &fakeRecorder{}
			c := NewController("s", &fakeMutator{result: result}, recorder, nil)
			fillForm(t, c, cottonForm())

			state, err := c.Submit(context.Background())
			require.ErrorIs(t, err, ErrSubmission)
			assert.Equal(t, MessageSubmitFailed, state.Message)
			assert.Empty(t, recorder.entries)
		})
	}
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	mutator := &fakeMutator{
		result:  &models.InsertFabricResult{QRCodeURL: "https://x/y.png"},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c := NewController("s", mutator, nil, nil)
	fillForm(t, c, cottonForm())

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = c.Submit(context.Background())
	}()

	<-mutator.entered
	assert.True(t, c.State().Submitting)
	assert.True(t, c.Busy())

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(mutator.block)
	wg.Wait()
	require.NoError(t, firstErr)
	assert.Len(t, mutator.Calls(), 1)
	assert.False(t, c.State().Submitting)
}

func TestCloseDiscardsLateResponse(t *testing.T) {
	mutator := &fakeMutator{
		result:  &models.InsertFabricResult{QRCodeURL: "https://x/late.png"},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	recorder := &fakeRecorder{}
	c := NewController("s", mutator, recorder, nil)
	fillForm(t, c, cottonForm())

	notified := 0
	c.Subscribe(func(models.FormState) { notified++ })

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-mutator.entered
	c.Close()
	close(mutator.block)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrControllerClosed)
	case <-time.After(time.Second):
		t.Fatal("submit did not return after close")
	}

	assert.Empty(t, c.State().QRCodeURL)
	assert.Empty(t, recorder.entries)
	assert.Equal(t, 1, notified, "only the in-flight notification precedes close")
	assert.ErrorIs(t, c.UpdateField(models.FieldColour, "Red"), ErrControllerClosed)
}

func TestUpdateFieldLeavesOthersUntouched(t *testing.T) {
	c := NewController("s", &fakeMutator{}, nil, nil)
	fillForm(t, c, cottonForm())

	require.NoError(t, c.UpdateField(models.FieldColour, "Red"))

	fields := c.State().Fields
	assert.Equal(t, "Red", fields.Colour)
	assert.Equal(t, "Cotton", fields.FabricType)
	assert.Equal(t, "10", fields.Length)
	assert.Equal(t, "2024-01-01", fields.DateOfPurchase)
}

func TestUpdateFieldUnknownName(t *testing.T) {
	c := NewController("s", &fakeMutator{}, nil, nil)

	err := c.UpdateField("weight", "3")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Equal(t, models.FabricForm{}, c.State().Fields)
}

func TestFieldsNotResetAfterSubmit(t *testing.T) {
	c := NewController("s", &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/y.png"}}, nil, nil)
	fillForm(t, c, cottonForm())

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Cotton", c.State().Fields.FabricType)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	c := NewController("s", &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/y.png"}}, nil, nil)

	var states []models.FormState
	unsubscribe := c.Subscribe(func(s models.FormState) { states = append(states, s) })

	require.NoError(t, c.UpdateField(models.FieldFabricType, "Silk"))
	require.Len(t, states, 1)
	assert.Equal(t, "Silk", states[0].Fields.FabricType)

	fillForm(t, c, cottonForm())
	states = nil
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, states, 2)
	assert.True(t, states[0].Submitting)
	assert.False(t, states[1].Submitting)
	assert.Equal(t, "https://x/y.png", states[1].QRCodeURL)

	unsubscribe()
	require.NoError(t, c.UpdateField(models.FieldColour, "Green"))
	assert.Len(t, states, 2)
}

func TestJournalFailureDoesNotFailSubmission(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("mongo down")}
	c := NewController("s", &fakeMutator{result: &models.InsertFabricResult{QRCodeURL: "https://x/y.png"}}, recorder, nil)
	fillForm(t, c, cottonForm())

	state, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MessageSubmitted, state.Message)
}
