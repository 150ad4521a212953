package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/firewatch-kr/wildfire-report-service/internal/aggregate"
	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
)

var (
	// ErrNotLoaded is returned by build and query operations before
	// LoadDatasets has succeeded.
	ErrNotLoaded = errors.New("datasets not loaded")

	// ErrNoNationalDataset is returned for national-scope queries when the
	// service runs without a national dataset key.
	ErrNoNationalDataset = errors.New("no national dataset configured")
)

// DatasetSource supplies keyed tables. Implemented by dataset.Loader;
// substituted in tests.
type DatasetSource interface {
	Load(ctx context.Context, key string) (*domain.Table, error)
}

// Params shape one build. TopCauses <= 0 keeps every cause label; a zero
// YearRange is unbounded.
type Params struct {
	TopCauses int
	Years     aggregate.YearRange
}

// Bundle is one finished report: every section aggregated from the same
// dataset snapshot, stamped with a build ID and generation time.
type Bundle struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Hourly         []domain.HourlyCount        `json:"hourly"`
	CauseHourly    []domain.CauseHourCount     `json:"cause_hourly"`
	Monthly        []domain.MonthlyCount       `json:"monthly"`
	YearlyRegional []domain.YearlyCount        `json:"yearly_regional"`
	YearlyNational []domain.YearlyCount        `json:"yearly_national,omitempty"`
	RegionYearly   []domain.RegionYearCount    `json:"region_yearly"`
	Mobilization   []domain.MobilizationRecord `json:"mobilization"`
	Casualties     []domain.CasualtyRecord     `json:"casualties"`
}

// SectionCount reports how many sections carry data.
func (b *Bundle) SectionCount() int {
	n := 0
	for _, present := range []bool{
		b.Hourly != nil,
		b.CauseHourly != nil,
		b.Monthly != nil,
		b.YearlyRegional != nil,
		b.YearlyNational != nil,
		b.RegionYearly != nil,
		b.Mobilization != nil,
		b.Casualties != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

// Builder loads the incident datasets and turns them into report bundles.
// The regional dataset drives every section; the optional national dataset
// adds the national yearly series and, when present, the region/year edge
// list.
type Builder struct {
	source      DatasetSource
	regionalKey string
	nationalKey string
	defaults    Params
	metrics     *observability.Metrics
	logger      *slog.Logger

	mu       sync.RWMutex
	regional *domain.Table
	national *domain.Table
	latest   *Bundle

	ready atomic.Bool
}

// NewBuilder wires a builder to its dataset source. nationalKey may be empty.
func NewBuilder(source DatasetSource, regionalKey, nationalKey string, defaults Params, metrics *observability.Metrics, logger *slog.Logger) *Builder {
	return &Builder{
		source:      source,
		regionalKey: regionalKey,
		nationalKey: nationalKey,
		defaults:    defaults,
		metrics:     metrics,
		logger:      logger,
	}
}

// Defaults returns the configured build parameters.
func (b *Builder) Defaults() Params { return b.defaults }

// LoadDatasets fetches the configured datasets and swaps them in atomically.
// Safe to call again to pick up refreshed source files.
func (b *Builder) LoadDatasets(ctx context.Context) error {
	regional, err := b.source.Load(ctx, b.regionalKey)
	if err != nil {
		return fmt.Errorf("load regional dataset: %w", err)
	}
	b.metrics.DatasetRows.WithLabelValues("regional").Add(float64(regional.NumRows()))

	var national *domain.Table
	if b.nationalKey != "" {
		national, err = b.source.Load(ctx, b.nationalKey)
		if err != nil {
			return fmt.Errorf("load national dataset: %w", err)
		}
		b.metrics.DatasetRows.WithLabelValues("national").Add(float64(national.NumRows()))
	}

	b.mu.Lock()
	b.regional = regional
	b.national = national
	b.mu.Unlock()
	return nil
}

// Build runs every aggregation against the loaded datasets and returns the
// finished bundle. The first successful build flips readiness.
func (b *Builder) Build(ctx context.Context, params Params) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := clock.Now()

	b.mu.RLock()
	regional, national := b.regional, b.national
	b.mu.RUnlock()
	if regional == nil {
		return nil, ErrNotLoaded
	}

	bundle := &Bundle{
		BuildID:     uuid.NewString(),
		GeneratedAt: clock.Now().UTC(),
	}

	var err error
	if bundle.Hourly, err = aggregate.HourlyCounts(regional); err != nil {
		return nil, fmt.Errorf("hourly section: %w", err)
	}
	if bundle.CauseHourly, err = aggregate.CauseHourMatrix(regional, params.TopCauses); err != nil {
		return nil, fmt.Errorf("cause section: %w", err)
	}
	if bundle.Monthly, err = aggregate.MonthlyCounts(regional, params.Years); err != nil {
		return nil, fmt.Errorf("monthly section: %w", err)
	}
	if bundle.YearlyRegional, err = aggregate.YearlyCounts(regional, params.Years); err != nil {
		return nil, fmt.Errorf("yearly section: %w", err)
	}
	if bundle.Mobilization, err = aggregate.MobilizationRollup(regional); err != nil {
		return nil, fmt.Errorf("mobilization section: %w", err)
	}
	if bundle.Casualties, err = aggregate.CasualtyByYear(regional); err != nil {
		return nil, fmt.Errorf("casualty section: %w", err)
	}

	regionSource := regional
	if national != nil {
		regionSource = national
		if bundle.YearlyNational, err = aggregate.YearlyCounts(national, params.Years); err != nil {
			return nil, fmt.Errorf("national yearly section: %w", err)
		}
	}
	if bundle.RegionYearly, err = aggregate.RegionYearCounts(regionSource); err != nil {
		return nil, fmt.Errorf("region section: %w", err)
	}

	b.observeDrops(regional, bundle)

	b.mu.Lock()
	b.latest = bundle
	b.mu.Unlock()
	b.ready.Store(true)

	b.metrics.ReportBuilds.Inc()
	b.metrics.BuildDuration.Observe(clock.Since(start).Seconds())
	b.metrics.ReportReady.Set(1)
	b.logger.Info("report built",
		"build_id", bundle.BuildID,
		"sections", bundle.SectionCount(),
		"top_causes", params.TopCauses)
	return bundle, nil
}

// observeDrops derives dropped-row counts for the sections where the dense
// output makes them recoverable, and surfaces them as metrics and a warning.
func (b *Builder) observeDrops(regional *domain.Table, bundle *Bundle) {
	kept := 0
	for _, rec := range bundle.Hourly {
		kept += rec.Count
	}
	if dropped := regional.NumRows() - kept; dropped > 0 {
		b.metrics.DatasetRowsDropped.WithLabelValues("regional", "hourly").Add(float64(dropped))
		b.logger.Warn("rows dropped during aggregation",
			"dataset", "regional",
			"section", "hourly",
			"dropped", dropped)
	}
}

// Ready reports whether at least one build has completed.
func (b *Builder) Ready() bool { return b.ready.Load() }

// CheckReadiness implements the HTTP readiness contract.
func (b *Builder) CheckReadiness(_ context.Context) error {
	if !b.ready.Load() {
		return errors.New("first report build has not completed")
	}
	return nil
}

// Latest returns the most recent bundle, or nil before the first build.
func (b *Builder) Latest() *Bundle {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// Hourly aggregates the hourly section on demand.
func (b *Builder) Hourly() ([]domain.HourlyCount, error) {
	regional, _, err := b.tables()
	if err != nil {
		return nil, err
	}
	return aggregate.HourlyCounts(regional)
}

// CauseHourly aggregates the cause/hour matrix with an explicit bucket width.
func (b *Builder) CauseHourly(topN int) ([]domain.CauseHourCount, error) {
	regional, _, err := b.tables()
	if err != nil {
		return nil, err
	}
	return aggregate.CauseHourMatrix(regional, topN)
}

// Monthly aggregates the month series over an explicit year range.
func (b *Builder) Monthly(years aggregate.YearRange) ([]domain.MonthlyCount, error) {
	regional, _, err := b.tables()
	if err != nil {
		return nil, err
	}
	return aggregate.MonthlyCounts(regional, years)
}

// Yearly aggregates per-year totals for the named dataset scope, "regional"
// or "national".
func (b *Builder) Yearly(dataset string, years aggregate.YearRange) ([]domain.YearlyCount, error) {
	regional, national, err := b.tables()
	if err != nil {
		return nil, err
	}
	if dataset == "national" {
		if national == nil {
			return nil, ErrNoNationalDataset
		}
		return aggregate.YearlyCounts(national, years)
	}
	return aggregate.YearlyCounts(regional, years)
}

// RegionYearly aggregates the sparse region/year edge list, preferring the
// national dataset when one is loaded.
func (b *Builder) RegionYearly() ([]domain.RegionYearCount, error) {
	regional, national, err := b.tables()
	if err != nil {
		return nil, err
	}
	if national != nil {
		return aggregate.RegionYearCounts(national)
	}
	return aggregate.RegionYearCounts(regional)
}

// Mobilization aggregates the personnel roll-up.
func (b *Builder) Mobilization() ([]domain.MobilizationRecord, error) {
	regional, _, err := b.tables()
	if err != nil {
		return nil, err
	}
	return aggregate.MobilizationRollup(regional)
}

// Casualties aggregates the reconciled casualty series.
func (b *Builder) Casualties() ([]domain.CasualtyRecord, error) {
	regional, _, err := b.tables()
	if err != nil {
		return nil, err
	}
	return aggregate.CasualtyByYear(regional)
}

func (b *Builder) tables() (*domain.Table, *domain.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.regional == nil {
		return nil, nil, ErrNotLoaded
	}
	return b.regional, b.national, nil
}
