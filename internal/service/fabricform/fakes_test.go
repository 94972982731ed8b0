package fabricform

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

type fakeMutator struct {
	mu     sync.Mutex
	calls  []models.FabricInput
	result *models.InsertFabricResult
	err    error

	// block, when set, holds every call until it is closed.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeMutator) InsertFabricDetails(ctx context.Context, input models.FabricInput) (*models.InsertFabricResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, input)
	block, entered := f.block, f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	return f.result, f.err
}

func (f *fakeMutator) Calls() []models.FabricInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.FabricInput(nil), f.calls...)
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.SubmissionEntry
	err     error
}

func (f *fakeRecorder) RecordSubmission(ctx context.Context, entry models.SubmissionEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return f.err
}

func fillForm(t *testing.T, c *Controller, values map[string]string) {
	t.Helper()
	for _, name := range models.FieldNames {
		if v, ok := values[name]; ok {
			require.NoError(t, c.UpdateField(name, v))
		}
	}
}

func cottonForm() map[string]string {
	return map[string]string{
		models.FieldFabricType:     "Cotton",
		models.FieldColour:         "Blue",
		models.FieldLength:         "10",
		models.FieldWidth:          "2.5",
		models.FieldPrice:          "1200",
		models.FieldDateOfPurchase: "2024-01-01",
	}
}
