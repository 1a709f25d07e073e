package optimizer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teilomillet/promptlift/analyzer"
	"github.com/teilomillet/promptlift/store"
	"github.com/teilomillet/promptlift/types"
	"github.com/teilomillet/promptlift/utils"
)

var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	seq := 0
	base := []EngineOption{
		WithLogger(utils.NewNopLogger()),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	e := NewEngine(context.Background(), append(base, opts...)...)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// failingStore fails every operation.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errStoreDown }
func (failingStore) Set(context.Context, string, []byte) error         { return errStoreDown }
func (failingStore) Close() error                                      { return nil }

// flakyStore wraps a store and fails the next failGets reads of key.
type flakyStore struct {
	store.Store
	key      string
	failGets int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == f.key && f.failGets > 0 {
		f.failGets--
		return nil, false, errStoreDown
	}
	return f.Store.Get(ctx, key)
}

func TestOptimizeRejectsEmptyPrompt(t *testing.T) {
	e := newTestEngine(t)
	for _, prompt := range []string{"", "   \n\t"} {
		_, err := e.Optimize(context.Background(), prompt)
		require.Error(t, err)
		assert.True(t, types.IsValidation(err), "prompt %q", prompt)
	}
	assert.Zero(t, e.Analytics().Optimizations)
}

func TestOptimizeRejectsInvalidOptions(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Optimize(context.Background(), "write a story", WithLevel("turbo"))
	assert.True(t, types.IsValidation(err))

	_, err = e.Optimize(context.Background(), "write a story", WithPlatform("myspace"))
	assert.True(t, types.IsValidation(err))
}

func TestOptimizeShortPromptGrows(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Optimize(context.Background(), "write a story", WithLevel(types.LevelAdvanced))
	require.NoError(t, err)

	require.NotNil(t, res.Suggestions)
	assert.True(t, types.Has(res.Suggestions.Immediate, "length"))
	assert.Greater(t, analyzer.WordCount(res.Optimized.Text), analyzer.WordCount("write a story"))
	assert.Greater(t, res.Improvement.WordCountChange, 0)
	assert.Greater(t, res.Improvement.LengthChange, 0)
}

func TestOptimizeRemovesFiller(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Optimize(context.Background(), "um, like, write a good blog post, you know", WithLevel(types.LevelBasic))
	require.NoError(t, err)

	for _, filler := range []string{"um", "like", "you know"} {
		re := regexp.MustCompile(`(?i)\b` + filler + `\b`)
		assert.False(t, re.MatchString(res.Optimized.Text), "%q left in %q", filler, res.Optimized.Text)
	}
}

func TestOptimizeResultShape(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Optimize(context.Background(), "Please explain machine learning to me.",
		WithPlatform(types.PlatformClaude), WithStyle(types.StyleTechnical))
	require.NoError(t, err)

	assert.Equal(t, "id-1", res.ID)
	assert.Equal(t, "Please explain machine learning to me.", res.Original.Text)
	assert.NotNil(t, res.Original.Analysis)
	assert.NotNil(t, res.Optimized.Analysis)
	assert.Empty(t, res.Alternatives)
	assert.Equal(t, res.Optimized.Score-res.Original.Score, res.Improvement.OverallScoreChange)
	assert.Equal(t, GradeChange{From: res.Original.Grade, To: res.Optimized.Grade}, res.Improvement.GradeChange)
	assert.Equal(t, Metadata{
		Level:     types.LevelAdvanced,
		Platform:  types.PlatformClaude,
		Style:     types.StyleTechnical,
		Timestamp: fixedTime,
	}, res.Metadata)
	assert.Contains(t, res.Optimized.Text, "<task>")
	for _, a := range res.Improvement.AspectImprovements {
		assert.Greater(t, a.Change, minAspectDelta)
		assert.Equal(t, a.After-a.Before, a.Change)
	}
	assert.GreaterOrEqual(t, res.Improvement.Confidence, 0)
	assert.LessOrEqual(t, res.Improvement.Confidence, 100)
	assert.GreaterOrEqual(t, res.Improvement.TimeSavedMinutes, 0)
}

func TestOptimizeOmitsAnalysisAndSuggestions(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Optimize(context.Background(), "write a story",
		WithIncludeAnalysis(false), WithIncludeSuggestions(false))
	require.NoError(t, err)
	assert.Nil(t, res.Original.Analysis)
	assert.Nil(t, res.Optimized.Analysis)
	assert.Nil(t, res.Suggestions)
}

func TestOptimizeAlternatives(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.Optimize(context.Background(), "write a story about a dragon",
		WithLevel(types.LevelAdvanced), WithGenerateAlternatives(true))
	require.NoError(t, err)

	require.Len(t, res.Alternatives, 2)
	assert.Equal(t, types.LevelBasic, res.Alternatives[0].Level)
	assert.Equal(t, types.LevelExpert, res.Alternatives[1].Level)
	for _, alt := range res.Alternatives {
		assert.NotEmpty(t, alt.Text)
		assert.NotEmpty(t, alt.Grade)
	}
	assert.True(t, strings.HasPrefix(res.Alternatives[1].Text, "You are"))
}

func TestCacheHitSkipsAnalytics(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first, err := e.Optimize(ctx, "write a story", WithLevel(types.LevelAdvanced))
	require.NoError(t, err)
	second, err := e.Optimize(ctx, "write a story", WithLevel(types.LevelAdvanced))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, first.Optimized.Text, second.Optimized.Text)
	assert.Equal(t, 1, e.Analytics().Optimizations)
	assert.Equal(t, 1, e.CacheSize())

	// A different level is a different fingerprint.
	_, err = e.Optimize(ctx, "write a story", WithLevel(types.LevelBasic))
	require.NoError(t, err)
	assert.Equal(t, 2, e.Analytics().Optimizations)
}

func TestCachingDisabled(t *testing.T) {
	e := newTestEngine(t, WithCaching(false))
	ctx := context.Background()
	for range 2 {
		_, err := e.Optimize(ctx, "write a story")
		require.NoError(t, err)
	}
	assert.Equal(t, 0, e.CacheSize())
	assert.Equal(t, 2, e.Analytics().Optimizations)
}

func TestCacheEvictsOldestInserted(t *testing.T) {
	e := newTestEngine(t, WithMaxCacheSize(2))
	ctx := context.Background()
	prompts := []string{"write a story", "write a poem", "write a song"}
	for _, p := range prompts {
		_, err := e.Optimize(ctx, p)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, e.CacheSize())
	assert.Equal(t, 3, e.Analytics().Optimizations)

	_, err := e.Optimize(ctx, prompts[1])
	require.NoError(t, err)
	_, err = e.Optimize(ctx, prompts[2])
	require.NoError(t, err)
	assert.Equal(t, 3, e.Analytics().Optimizations, "newer entries stay cached")

	_, err = e.Optimize(ctx, prompts[0])
	require.NoError(t, err)
	assert.Equal(t, 4, e.Analytics().Optimizations, "oldest entry was evicted")
	assert.Equal(t, 2, e.CacheSize())
}

func TestClearCache(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Optimize(context.Background(), "write a story")
	require.NoError(t, err)
	e.ClearCache()
	assert.Zero(t, e.CacheSize())
}

func TestAnalyticsRunningMean(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var n, improved int
	var want float64
	usage := map[string]int{}
	for _, tc := range []struct {
		prompt   string
		platform types.Platform
	}{
		{"write a story", types.PlatformNone},
		{"explain rust", types.PlatformClaude},
		{"um, like, write a good blog post, you know", types.PlatformChatGPT},
		{"compare go and rust", types.PlatformClaude},
	} {
		res, err := e.Optimize(ctx, tc.prompt, WithPlatform(tc.platform))
		require.NoError(t, err)
		n++
		usage[tc.platform.Label()]++
		if d := float64(res.Improvement.OverallScoreChange); d > 0 {
			improved++
			want += (d - want) / float64(improved)
		}
	}

	got := e.Analytics()
	assert.Equal(t, n, got.Optimizations)
	assert.Equal(t, improved, got.ImprovedOptimizations)
	assert.Equal(t, usage, got.PlatformUsage)
	assert.InDelta(t, want, got.AverageScoreImprovement, 1e-9)

	require.NoError(t, e.ClearAnalytics(ctx))
	assert.Zero(t, e.Analytics().Optimizations)
}

func TestAnalyticsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	e1 := NewEngine(ctx, WithStore(s), WithLogger(utils.NewNopLogger()))
	_, err := e1.Optimize(ctx, "write a story", WithPlatform(types.PlatformGemini))
	require.NoError(t, err)
	want := e1.Analytics()

	e2 := NewEngine(ctx, WithStore(s), WithLogger(utils.NewNopLogger()))
	assert.Equal(t, want, e2.Analytics())
	assert.Equal(t, 1, e2.Analytics().PlatformUsage["gemini"])
}

func TestAnalyticsMeanIgnoresOrder(t *testing.T) {
	record := func(deltas ...int) AnalyticsState {
		e := &Engine{}
		for _, d := range deltas {
			e.recordAnalytics(&OptimizationResult{Improvement: Improvement{OverallScoreChange: d}})
		}
		return e.analytics
	}
	a, b := record(10, 0), record(0, 10)

	assert.InDelta(t, 10, a.AverageScoreImprovement, 1e-9)
	assert.InDelta(t, 10, b.AverageScoreImprovement, 1e-9)
	assert.Equal(t, 1, b.ImprovedOptimizations)
}

func TestAnalyticsMerge(t *testing.T) {
	persisted := AnalyticsState{Optimizations: 3, ImprovedOptimizations: 2, PlatformUsage: map[string]int{"claude": 3}, AverageScoreImprovement: 10}
	local := AnalyticsState{Optimizations: 2, ImprovedOptimizations: 1, PlatformUsage: map[string]int{"claude": 1, "none": 1}, AverageScoreImprovement: 4}

	got := persisted.merge(local)
	assert.Equal(t, 5, got.Optimizations)
	assert.Equal(t, 3, got.ImprovedOptimizations)
	assert.Equal(t, map[string]int{"claude": 4, "none": 1}, got.PlatformUsage)
	assert.InDelta(t, 8, got.AverageScoreImprovement, 1e-9)
}

func TestFailedAnalyticsLoadDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()

	seed := newTestEngine(t, WithStore(mem), WithCaching(false))
	for _, p := range []string{"write a story", "write a poem", "write a song"} {
		_, err := seed.Optimize(ctx, p)
		require.NoError(t, err)
	}
	require.Equal(t, 3, seed.Analytics().Optimizations)

	flaky := &flakyStore{Store: mem, key: AnalyticsKey, failGets: 1}
	e := newTestEngine(t, WithStore(flaky))
	assert.Zero(t, e.Analytics().Optimizations)

	_, err := e.Optimize(ctx, "explain rust")
	require.NoError(t, err)
	assert.Equal(t, 4, e.Analytics().Optimizations, "persisted analytics merged on retry")

	restarted := newTestEngine(t, WithStore(mem))
	assert.Equal(t, 4, restarted.Analytics().Optimizations)
}

func TestAnalyticsHeldWhileStoreUnreadable(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	raw := []byte(`{"optimizations":5,"improvedOptimizations":0,"platformUsage":{"none":5}}`)
	require.NoError(t, mem.Set(ctx, AnalyticsKey, raw))

	flaky := &flakyStore{Store: mem, key: AnalyticsKey, failGets: 2}
	e := newTestEngine(t, WithStore(flaky))
	_, err := e.Optimize(ctx, "explain rust")
	require.NoError(t, err)

	stored, _, err := mem.Get(ctx, AnalyticsKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(stored), "persisted state untouched until it can be read")

	_, err = e.Optimize(ctx, "write a poem")
	require.NoError(t, err)
	assert.Equal(t, 7, e.Analytics().Optimizations)
	assert.Equal(t, 7, e.Analytics().PlatformUsage["none"])
}

func TestHistorySurvivesTransientReadError(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemoryStore()
	flaky := &flakyStore{Store: mem, key: HistoryKey}
	e := newTestEngine(t, WithStore(flaky), WithCaching(false))

	for _, p := range []string{"write a story", "write a poem", "write a song"} {
		_, err := e.Optimize(ctx, p)
		require.NoError(t, err)
	}

	flaky.failGets = 1
	_, err := e.Optimize(ctx, "explain rust")
	require.NoError(t, err)

	records, err := e.History(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3, "unreadable history is not overwritten")

	_, err = e.Optimize(ctx, "compare go and rust")
	require.NoError(t, err)

	records, err = e.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "explain rust", records[3].OriginalText)
	assert.Equal(t, "compare go and rust", records[4].OriginalText)
}

func TestHistoryIsBounded(t *testing.T) {
	e := newTestEngine(t, WithHistoryLimit(2))
	ctx := context.Background()
	for _, p := range []string{"write a story", "write a poem", "write a song"} {
		_, err := e.Optimize(ctx, p)
		require.NoError(t, err)
	}

	records, err := e.History(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "write a poem", records[0].OriginalText)
	assert.Equal(t, "write a song", records[1].OriginalText)
	assert.Equal(t, "id-3", records[1].ID)
	assert.Equal(t, "none", records[1].Platform)
}

func TestHistoryDisabled(t *testing.T) {
	e := newTestEngine(t, WithHistoryLimit(0))
	_, err := e.Optimize(context.Background(), "write a story")
	require.NoError(t, err)

	records, err := e.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFailingStoreDegradesGracefully(t *testing.T) {
	logger := utils.NewCaptureLogger()
	e := NewEngine(context.Background(), WithStore(failingStore{}), WithLogger(logger))
	ctx := context.Background()

	res, err := e.Optimize(ctx, "write a story")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Optimized.Text)
	assert.Equal(t, 1, e.Analytics().Optimizations)
	assert.Equal(t, 1, e.CacheSize())
	assert.GreaterOrEqual(t, logger.Count("WARN"), 2)

	err = e.ClearAnalytics(ctx)
	assert.True(t, types.IsType(err, types.ErrorTypeAnalyticsPersist))
}

func TestInternalFailureLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(t, WithIDGenerator(func() string { panic("boom") }))
	_, err := e.Optimize(context.Background(), "write a story")
	require.Error(t, err)
	assert.True(t, types.IsType(err, types.ErrorTypeInternal))
	assert.Zero(t, e.CacheSize())
	assert.Zero(t, e.Analytics().Optimizations)
}

func TestFingerprint(t *testing.T) {
	long := strings.Repeat("a", FingerprintPrefixRunes)

	base := Fingerprint("x", types.LevelBasic, "", types.StyleProfessional)
	assert.Equal(t, base, Fingerprint("x", types.LevelBasic, "", types.StyleProfessional))
	assert.NotEqual(t, base, Fingerprint("x", types.LevelExpert, "", types.StyleProfessional))
	assert.NotEqual(t, base, Fingerprint("x", types.LevelBasic, types.PlatformClaude, types.StyleProfessional))
	assert.NotEqual(t, base, Fingerprint("x", types.LevelBasic, "", types.StyleTechnical))
	assert.Equal(t,
		Fingerprint(long+"tail one", types.LevelBasic, "", types.StyleProfessional),
		Fingerprint(long+"tail two", types.LevelBasic, "", types.StyleProfessional))
	assert.Len(t, base, 64)
}

func TestCacheKeyIncludesStyle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	prompt := "write a function that parses dates"

	creative, err := e.Optimize(ctx, prompt, WithLevel(types.LevelExpert), WithStyle(types.StyleCreative))
	require.NoError(t, err)
	technical, err := e.Optimize(ctx, prompt, WithLevel(types.LevelExpert), WithStyle(types.StyleTechnical))
	require.NoError(t, err)

	assert.NotSame(t, creative, technical)
	assert.Equal(t, types.StyleTechnical, technical.Metadata.Style)
	assert.Equal(t, 2, e.CacheSize())

	fresh := newTestEngine(t)
	want, err := fresh.Optimize(ctx, prompt, WithLevel(types.LevelExpert), WithStyle(types.StyleTechnical))
	require.NoError(t, err)
	assert.Equal(t, want.Optimized.Text, technical.Optimized.Text)
}

func TestBatchOptimizeCollectsErrors(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.BatchOptimize(context.Background(), []string{"a", "", "c"}, BatchOptions{})
	require.NoError(t, err)

	require.Len(t, res.Results, 3)
	assert.NotNil(t, res.Results[0])
	assert.Nil(t, res.Results[1])
	assert.NotNil(t, res.Results[2])
	assert.Equal(t, "a", res.Results[0].Original.Text)
	assert.Equal(t, "c", res.Results[2].Original.Text)

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.True(t, types.IsValidation(res.Errors[0]))
	assert.Equal(t, BatchSummary{Total: 3, Successful: 2, Failed: 1}, res.Summary)
}

func TestBatchOptimizeStopOnError(t *testing.T) {
	e := newTestEngine(t)
	res, err := e.BatchOptimize(context.Background(), []string{"a", "", "c", "d"}, BatchOptions{Concurrent: 1, StopOnError: true})
	require.Error(t, err)

	var itemErr *types.BatchItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, 1, itemErr.Index)
	assert.NotNil(t, res.Results[0])
	assert.Nil(t, res.Results[2])
	assert.Nil(t, res.Results[3])
	assert.Equal(t, BatchSummary{Total: 4, Successful: 1, Failed: 1}, res.Summary)
}

func TestBatchOptimizePreservesOrder(t *testing.T) {
	gofakeit.Seed(7)
	prompts := make([]string, 10)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("%d %s", i, gofakeit.Sentence(8))
	}

	e := newTestEngine(t, WithBatchConcurrency(4), WithBatchRateLimit(1000))
	var windows []int
	res, err := e.BatchOptimize(context.Background(), prompts, BatchOptions{
		Progress: func(n int) { windows = append(windows, n) },
	})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 2}, windows)
	for i, r := range res.Results {
		require.NotNil(t, r)
		assert.Equal(t, prompts[i], r.Original.Text)
	}
	assert.Equal(t, BatchSummary{Total: 10, Successful: 10}, res.Summary)
}

func TestBatchOptimizeHonoursCancellation(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := e.BatchOptimize(ctx, []string{"a", "b"}, BatchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res.Results[0])
}

func TestRealtimeSuggestions(t *testing.T) {
	e := newTestEngine(t)
	res := e.RealtimeSuggestions("write a story")

	assert.Equal(t, 3, res.Analysis.WordCount)
	assert.True(t, types.Has(res.Suggestions, "length"))
	assert.NotEmpty(t, res.QuickTips)
	assert.LessOrEqual(t, len(res.QuickTips), maxQuickTips)
	assert.Zero(t, e.CacheSize())
	assert.Zero(t, e.Analytics().Optimizations)

	empty := e.RealtimeSuggestions("  ")
	assert.Empty(t, empty.Suggestions)
	assert.Empty(t, empty.QuickTips)
}

func TestRealtimePlatformLengthTip(t *testing.T) {
	e := newTestEngine(t)
	pr, ok := e.catalog.Platform(types.PlatformChatGPT)
	require.True(t, ok)

	long := strings.Repeat("word ", pr.MaxOptimalLength+1)
	res := e.RealtimeSuggestions(long, WithPlatform(types.PlatformChatGPT))
	require.NotEmpty(t, res.QuickTips)
	assert.Contains(t, res.QuickTips[0], fmt.Sprint(pr.MaxOptimalLength))
}

func TestOptimizePrompt(t *testing.T) {
	res, err := OptimizePrompt(context.Background(), "write a story", WithLevel(types.LevelExpert))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Optimized.Text, "You are"))

	_, err = OptimizePrompt(context.Background(), "")
	assert.True(t, types.IsValidation(err))
}
