package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avernet/stockpulse/internal/contracts"
	"github.com/avernet/stockpulse/internal/scoring"
	"github.com/avernet/stockpulse/pkg/logger"
)

type stubCharts struct {
	series []contracts.PricePoint
	err    error
}

func (s *stubCharts) FetchDailyBars(_ context.Context, _ string) ([]contracts.PricePoint, error) {
	return s.series, s.err
}

type stubFundamentals struct {
	raw *contracts.RawFundamentals
	err error
}

func (s *stubFundamentals) FetchFundamentals(_ context.Context, _ string) (*contracts.RawFundamentals, error) {
	return s.raw, s.err
}

type stubHeadlines struct {
	items []contracts.NewsItem
	err   error
}

func (s *stubHeadlines) FetchHeadlines(_ context.Context, _ string) ([]contracts.NewsItem, error) {
	return s.items, s.err
}

func testSeries(n int) []contracts.PricePoint {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]contracts.PricePoint, n)
	for i := range out {
		out[i] = contracts.PricePoint{Time: base.AddDate(0, 0, i), Close: 100 + float64(i%7)}
	}
	return out
}

func newService(t *testing.T, charts ChartProvider, funds FundamentalsProvider, heads HeadlineProvider) *Service {
	t.Helper()
	cfg, err := scoring.Preset(scoring.PresetExtendedV6)
	require.NoError(t, err)
	engine, err := scoring.NewEngine(cfg, logger.NewNop())
	require.NoError(t, err)
	return NewService(engine, charts, funds, heads, logger.NewNop())
}

func TestEvaluateHappyPath(t *testing.T) {
	pe := 10.0
	svc := newService(t,
		&stubCharts{series: testSeries(250)},
		&stubFundamentals{raw: &contracts.RawFundamentals{TrailingPE: &pe, RecommendationKey: "buy"}},
		&stubHeadlines{},
	)

	result, err := svc.Evaluate(context.Background(), "TTE.PA")

	require.NoError(t, err)
	assert.Equal(t, "TTE.PA", result.Symbol)
	assert.InDelta(t, 4.0, result.SubScores.Consensus, 1e-9)
	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 5.0)
}

func TestEvaluateDegradesOnProviderFailures(t *testing.T) {
	svc := newService(t,
		&stubCharts{err: errors.New("rate limited")},
		&stubFundamentals{err: errors.New("quote outage")},
		&stubHeadlines{err: errors.New("feed down")},
	)

	result, err := svc.Evaluate(context.Background(), "RMS.PA")

	require.NoError(t, err)
	assert.InDelta(t, 2.5, result.FinalScore, 1e-9)
	assert.Equal(t, contracts.RecommendationHold, result.Recommendation)
}

func TestHistoryPropagatesChartError(t *testing.T) {
	svc := newService(t,
		&stubCharts{err: errors.New("rate limited")},
		&stubFundamentals{},
		&stubHeadlines{},
	)

	_, _, err := svc.History(context.Background(), "DSY.PA")
	assert.Error(t, err)
}

func TestHistoryReturnsParallelFrame(t *testing.T) {
	series := testSeries(60)
	svc := newService(t, &stubCharts{series: series}, &stubFundamentals{}, &stubHeadlines{})

	got, frame, err := svc.History(context.Background(), "DSY.PA")

	require.NoError(t, err)
	assert.Len(t, got, 60)
	assert.Equal(t, 60, frame.Len())
}

type recordingBroadcaster struct {
	results []*contracts.ScoreResult
}

func (b *recordingBroadcaster) Broadcast(result *contracts.ScoreResult) {
	b.results = append(b.results, result)
}

func TestWatchlistJobBroadcastsEachSymbol(t *testing.T) {
	svc := newService(t, &stubCharts{series: testSeries(250)}, &stubFundamentals{}, &stubHeadlines{})
	broadcaster := &recordingBroadcaster{}

	job := NewWatchlistJob(svc, broadcaster, []string{"TTE.PA", "AIR.PA"}, "0 * * * * *", logger.NewNop())

	require.Equal(t, "watchlist_refresh", job.Name())
	require.Equal(t, "0 * * * * *", job.Schedule())

	err := job.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, broadcaster.results, 2)
	assert.Equal(t, "TTE.PA", broadcaster.results[0].Symbol)
	assert.Equal(t, "AIR.PA", broadcaster.results[1].Symbol)
}

func TestWatchlistJobStopsOnCancel(t *testing.T) {
	svc := newService(t, &stubCharts{series: testSeries(250)}, &stubFundamentals{}, &stubHeadlines{})
	job := NewWatchlistJob(svc, nil, []string{"TTE.PA"}, "@hourly", logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, job.Run(ctx), context.Canceled)
}

func TestJobHistory(t *testing.T) {
	h := &JobHistory{}

	assert.Nil(t, h.Latest())
	assert.Zero(t, h.SuccessRate())

	h.AddResult(JobResult{JobName: "watchlist_refresh", Success: true})
	h.AddResult(JobResult{JobName: "watchlist_refresh", Success: false, Error: "boom"})

	require.NotNil(t, h.Latest())
	assert.False(t, h.Latest().Success)
	assert.InDelta(t, 0.5, h.SuccessRate(), 1e-9)

	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{Success: true})
	}
	assert.Len(t, h.Results, 100)
}

func TestSchedulerRejectsDuplicateJob(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	svc := newService(t, &stubCharts{}, &stubFundamentals{}, &stubHeadlines{})
	job := NewWatchlistJob(svc, nil, []string{"TTE.PA"}, "0 * * * * *", logger.NewNop())

	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job))
}

func TestSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	svc := newService(t, &stubCharts{}, &stubFundamentals{}, &stubHeadlines{})
	job := NewWatchlistJob(svc, nil, []string{"TTE.PA"}, "not a cron spec", logger.NewNop())

	assert.Error(t, s.AddJob(job))
}

func TestSchedulerRunJobUnknown(t *testing.T) {
	s := NewScheduler(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}
