package reporting

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

type fakeStore struct {
	entries  []models.SubmissionEntry
	from, to time.Time
	digests  []models.DailyDigest
}

func (f *fakeStore) ListSubmissions(ctx context.Context, from, to time.Time) ([]models.SubmissionEntry, error) {
	f.from, f.to = from, to
	return f.entries, nil
}

func (f *fakeStore) SaveDailyDigest(ctx context.Context, digest models.DailyDigest) error {
	f.digests = append(f.digests, digest)
	return nil
}

func sampleEntries() []models.SubmissionEntry {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return []models.SubmissionEntry{
		{Input: models.FabricInput{FabricType: "Cotton", Colour: "Blue", Length: 10, Width: 2.5, Price: 1200, DateOfPurchase: "2024-01-01"}, QRCodeURL: "https://x/1.png", SubmittedAt: at},
		{Input: models.FabricInput{FabricType: "cotton ", Colour: "Red", Length: 4.25, Width: 1.5, Price: 300.5, DateOfPurchase: "2024-01-01"}, QRCodeURL: "https://x/2.png", SubmittedAt: at.Add(time.Hour)},
		{Input: models.FabricInput{FabricType: "Silk", Colour: "White", Length: 2, Width: 1, Price: 900, DateOfPurchase: "2023-12-30"}, QRCodeURL: "https://x/3.png", SubmittedAt: at.Add(2 * time.Hour)},
	}
}

func TestGenerateDailyDigest(t *testing.T) {
	store := &fakeStore{entries: sampleEntries()}
	svc := NewService(store, time.UTC, nil)

	digest, err := svc.GenerateDailyDigest(context.Background(), time.Date(2024, 1, 1, 18, 45, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), store.from)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), store.to)

	assert.Equal(t, 3, digest.Submissions)
	assert.InDelta(t, 16.25, digest.TotalLength, 0.001)
	assert.InDelta(t, 2400.5, digest.TotalValue, 0.001)
	assert.Equal(t, map[string]int{"cotton": 2, "silk": 1}, digest.FabricCounts)
	require.Len(t, store.digests, 1)

	assert.Equal(t, "Fabric intake (2024-01-01): 3 records, 16.25 m, value 2400.50. cotton 2, silk 1.", FormatDigest(digest))
}

func TestDigestWithoutJournal(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.GenerateDailyDigest(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrJournalDisabled)
	assert.False(t, svc.Enabled())
}

func TestFormatEmptyDigest(t *testing.T) {
	d := Summarize(nil)
	d.Date = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Fabric intake (2024-01-01): no records yet.", FormatDigest(d))
}

func TestExportWorkbook(t *testing.T) {
	store := &fakeStore{entries: sampleEntries()}
	svc := NewService(store, time.UTC, nil)

	f, err := svc.ExportWorkbook(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	reopened, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	rows, err := reopened.GetRows(exportSheet)
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, []string{"2024-01-01 10:00:00", "Cotton", "Blue", "10", "2.5", "1200", "2024-01-01", "https://x/1.png"}, rows[1])
}
