package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
)

func testRenderer(t *testing.T, fragments map[string]string) (*Renderer, *observability.Metrics) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fragments {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".html"), []byte(body), 0o644))
	}
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRenderer(dir, 8, metrics, logger), metrics
}

func TestRendererSubstitutesTokens(t *testing.T) {
	r, _ := testRenderer(t, map[string]string{
		"hourly": `<script>const data = __DATA_HOURLY__;</script>`,
	})

	html, err := r.Render("hourly", map[string]any{
		TokenHourly: []domain.HourlyCount{{Hour: 9, Count: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, `<script>const data = [{"hour":9,"count":3}];</script>`, html)
}

func TestRendererMissingTokenIsError(t *testing.T) {
	r, _ := testRenderer(t, map[string]string{
		"hourly": `<div>no placeholder here</div>`,
	})

	_, err := r.Render("hourly", map[string]any{TokenHourly: []int{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "__DATA_HOURLY__")
}

func TestRendererMissingFragmentIsError(t *testing.T) {
	r, _ := testRenderer(t, nil)
	_, err := r.Render("nope", map[string]any{TokenHourly: []int{1}})
	assert.Error(t, err)
}

func TestRendererMemoizes(t *testing.T) {
	r, metrics := testRenderer(t, map[string]string{
		"monthly": `__DATA_MONTHLY__`,
	})
	data := map[string]any{TokenMonthly: []domain.MonthlyCount{{Month: 3, Count: 7}}}

	first, err := r.Render("monthly", data)
	require.NoError(t, err)
	second, err := r.Render("monthly", data)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RenderCache.WithLabelValues("hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RenderCache.WithLabelValues("miss")))
}

func TestRendererDifferentDataBypassesCache(t *testing.T) {
	r, metrics := testRenderer(t, map[string]string{
		"monthly": `__DATA_MONTHLY__`,
	})

	a, err := r.Render("monthly", map[string]any{TokenMonthly: []domain.MonthlyCount{{Month: 1, Count: 1}}})
	require.NoError(t, err)
	b, err := r.Render("monthly", map[string]any{TokenMonthly: []domain.MonthlyCount{{Month: 1, Count: 2}}})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RenderCache.WithLabelValues("miss")))
}

func TestRendererInvalidateAll(t *testing.T) {
	r, metrics := testRenderer(t, map[string]string{
		"monthly": `__DATA_MONTHLY__`,
	})
	data := map[string]any{TokenMonthly: []int{1, 2, 3}}

	_, err := r.Render("monthly", data)
	require.NoError(t, err)

	r.InvalidateAll()

	_, err = r.Render("monthly", data)
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.RenderCache.WithLabelValues("miss")))
}
