package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rfdevuser/InventoryManagement/internal/config"
	"github.com/rfdevuser/InventoryManagement/internal/domain/models"
)

type fakeDigests struct {
	enabled bool
	calls   int
}

func (f *fakeDigests) Enabled() bool { return f.enabled }

func (f *fakeDigests) GenerateDailyDigest(ctx context.Context, day time.Time) (models.DailyDigest, error) {
	f.calls++
	return models.DailyDigest{Date: day, Submissions: 1}, nil
}

type fakeSweeper struct {
	maxIdle time.Duration
}

func (f *fakeSweeper) Sweep(maxIdle time.Duration) int {
	f.maxIdle = maxIdle
	return 0
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{SessionIdleTTL: time.Hour},
		Reporting: config.ReportingConfig{
			CronSchedule:  "0 20 * * *",
			SweepSchedule: "@every 10m",
			Timezone:      "UTC",
		},
	}
}

func TestStartRegistersJobs(t *testing.T) {
	s := NewScheduler(testConfig(), &fakeDigests{enabled: true}, &fakeSweeper{}, nil)
	s.Start()
	defer s.Stop()

	assert.Equal(t, 2, s.Jobs())
}

func TestDigestSkippedWithoutJournal(t *testing.T) {
	s := NewScheduler(testConfig(), &fakeDigests{}, &fakeSweeper{}, nil)
	s.Start()
	defer s.Stop()

	assert.Equal(t, 1, s.Jobs())
}

func TestInvalidScheduleIsNotRegistered(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "not a schedule"

	s := NewScheduler(cfg, &fakeDigests{enabled: true}, nil, nil)
	s.Start()
	defer s.Stop()

	assert.Equal(t, 0, s.Jobs())
}

func TestJobsCallServices(t *testing.T) {
	digests, sweeper := &fakeDigests{enabled: true}, &fakeSweeper{}
	s := NewScheduler(testConfig(), digests, sweeper, nil)

	s.generateDailyDigest()
	s.sweepSessions()

	assert.Equal(t, 1, digests.calls)
	assert.Equal(t, time.Hour, sweeper.maxIdle)
}
