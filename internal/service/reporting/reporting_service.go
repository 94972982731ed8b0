package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ErrJournalDisabled indicates no submission journal was configured.
var ErrJournalDisabled = errors.New("submission journal disabled")

// Store is the journal view required by the reporting service.
type Store interface {
	ListSubmissions(ctx context.Context, from, to time.Time) ([]models.SubmissionEntry, error)
	SaveDailyDigest(ctx context.Context, digest models.DailyDigest) error
}

// Service aggregates journaled fabric intake.
type Service struct {
	store    Store
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. store may be nil when no journal is configured.
func NewService(store Store, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{store: store, location: location, logger: logger, now: time.Now}
}

// Enabled reports whether a journal backs the service.
func (s *Service) Enabled() bool {
	return s.store != nil
}

// GenerateDailyDigest aggregates the submissions of the calendar day containing day and stores the result.
func (s *Service) GenerateDailyDigest(ctx context.Context, day time.Time) (models.DailyDigest, error) {
	if s.store == nil {
		return models.DailyDigest{}, ErrJournalDisabled
	}

	start := startOfDay(day.In(s.location))
	end := start.AddDate(0, 0, 1)

	entries, err := s.store.ListSubmissions(ctx, start, end)
	if err != nil {
		return models.DailyDigest{}, fmt.Errorf("load submissions: %w", err)
	}

	digest := Summarize(entries)
	digest.Date = start
	digest.CreatedAt = s.now().UTC()

	if err := s.store.SaveDailyDigest(ctx, digest); err != nil {
		return models.DailyDigest{}, fmt.Errorf("save daily digest: %w", err)
	}

	s.logger.Info("daily digest generated",
		zap.String("date", start.Format(dateLayout)),
		zap.Int("submissions", digest.Submissions))
	return digest, nil
}

// Summarize folds journal entries into totals. Date and CreatedAt are left unset.
func Summarize(entries []models.SubmissionEntry) models.DailyDigest {
	digest := models.DailyDigest{FabricCounts: make(map[string]int)}

	for _, entry := range entries {
		digest.Submissions++
		digest.TotalLength += entry.Input.Length
		digest.TotalValue += entry.Input.Price

		fabric := strings.TrimSpace(strings.ToLower(entry.Input.FabricType))
		if fabric == "" {
			fabric = "unspecified"
		}
		digest.FabricCounts[fabric]++
	}

	digest.TotalLength = math.Round(digest.TotalLength*100) / 100
	digest.TotalValue = math.Round(digest.TotalValue*100) / 100
	return digest
}

// FormatDigest renders a digest as a short human-readable summary.
func FormatDigest(d models.DailyDigest) string {
	if d.Submissions == 0 {
		return fmt.Sprintf("Fabric intake (%s): no records yet.", d.Date.Format(dateLayout))
	}

	fabrics := make([]string, 0, len(d.FabricCounts))
	for name := range d.FabricCounts {
		fabrics = append(fabrics, name)
	}
	sort.Strings(fabrics)

	parts := make([]string, 0, len(fabrics))
	for _, name := range fabrics {
		parts = append(parts, fmt.Sprintf("%s %d", name, d.FabricCounts[name]))
	}

	return fmt.Sprintf("Fabric intake (%s): %d records, %.2f m, value %.2f. %s.",
		d.Date.Format(dateLayout), d.Submissions, d.TotalLength, d.TotalValue, strings.Join(parts, ", "))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
