// Command genmock generates deterministic synthetic incident datasets plus
// the report bundle the aggregation code produces from them. The fixture pair
// is useful for local development (point DATASET_BUCKET_URL at the output
// directory) and for refreshing test expectations after an aggregation
// change.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/mock -rows 500
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
	"github.com/firewatch-kr/wildfire-report-service/internal/observability"
	"github.com/firewatch-kr/wildfire-report-service/internal/report"
)

const fixtureSeed = 42

var (
	causes  = []string{"cigarette", "burning farm waste", "arson", "campfire", "machinery spark", "lightning", ""}
	regions = []string{"Gangwon", "Gyeonggi", "Gyeongbuk", "Gyeongnam", "Jeonnam", "Chungbuk", "Jeju"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "output directory for the fixture files")
	rows := flag.Int("rows", 500, "regional dataset rows to generate")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(fixtureSeed))
	regionalHeader, regionalRows := genRegional(rng, *rows)
	nationalHeader, nationalRows := genNational(rng, *rows/2)

	if err := writeCSV(filepath.Join(*outDir, "regional.csv"), regionalHeader, regionalRows); err != nil {
		return err
	}
	log.Printf("regional.csv: %d rows", len(regionalRows))
	if err := writeCSV(filepath.Join(*outDir, "national.csv"), nationalHeader, nationalRows); err != nil {
		return err
	}
	log.Printf("national.csv: %d rows", len(nationalRows))

	// Freeze the clock and the build ID so the expected bundle is stable
	// across runs.
	report.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
	))
	defer report.SetClock(nil)

	source := memorySource{
		"regional.csv": domain.NewTable(regionalHeader, regionalRows),
		"national.csv": domain.NewTable(nationalHeader, nationalRows),
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	builder := report.NewBuilder(source, "regional.csv", "national.csv",
		report.Params{TopCauses: 5}, observability.NewMetricsForTesting(), logger)

	ctx := context.Background()
	if err := builder.LoadDatasets(ctx); err != nil {
		return err
	}
	bundle, err := builder.Build(ctx, builder.Defaults())
	if err != nil {
		return err
	}
	bundle.BuildID = "fixture-build"

	out := filepath.Join(*outDir, "expected_bundle.json")
	if err := writeJSON(out, bundle); err != nil {
		return err
	}
	log.Printf("wrote expected bundle: %s (%d sections)", out, bundle.SectionCount())
	return nil
}

// memorySource serves the generated tables without a round-trip through the
// filesystem, so the expected bundle reflects exactly what was written.
type memorySource map[string]*domain.Table

func (m memorySource) Load(_ context.Context, key string) (*domain.Table, error) {
	t, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("dataset %s not found", key)
	}
	return t, nil
}

func genRegional(rng *rand.Rand, n int) ([]string, [][]string) {
	header := []string{
		"OCRN_YMD", "FIRE_OCRN_HR", "IGTN_HTSRC_LCLSF_NM", "SIDO_NM",
		"DTH_NOPE", "INJPSN_NOPE",
		"WHOL_MNPW_CNT", "MBLZ_POLICEO_CNT", "MBLZ_SOLD_CNT",
		"MBLZ_GNRL_OCPT_NOPE", "ETC_MBLZ_NOPE", "MBLZ_FFPWR_CNT",
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		year := 2018 + rng.Intn(5)
		// Spring-heavy months mimic the real seasonal skew.
		month := 1 + rng.Intn(12)
		if rng.Intn(2) == 0 {
			month = 2 + rng.Intn(4)
		}
		day := 1 + rng.Intn(28)
		hour := rng.Intn(24)
		minute := rng.Intn(60)

		firefighters := 5 + rng.Intn(80)
		police := rng.Intn(10)
		soldiers := rng.Intn(30)
		staff := rng.Intn(15)
		other := rng.Intn(20)
		total := firefighters + police + soldiers + staff + other

		rows = append(rows, []string{
			fmt.Sprintf("%04d%02d%02d", year, month, day),
			fmt.Sprintf("%02d%02d00", hour, minute),
			causes[rng.Intn(len(causes))],
			regions[rng.Intn(len(regions))],
			strconv.Itoa(pick(rng, 20, 2)), // deaths, mostly zero
			strconv.Itoa(pick(rng, 5, 6)),  // injuries
			strconv.Itoa(total),
			strconv.Itoa(police),
			strconv.Itoa(soldiers),
			strconv.Itoa(staff),
			strconv.Itoa(other),
			strconv.Itoa(firefighters),
		})
	}
	return header, rows
}

func genNational(rng *rand.Rand, n int) ([]string, [][]string) {
	header := []string{"startyear", "startmonth", "startdate", "region"}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		year := 2015 + rng.Intn(8)
		month := 1 + rng.Intn(12)
		day := 1 + rng.Intn(28)
		rows = append(rows, []string{
			strconv.Itoa(year),
			strconv.Itoa(month),
			fmt.Sprintf("%04d%02d%02d", year, month, day),
			regions[rng.Intn(len(regions))],
		})
	}
	return header, rows
}

// pick returns a small count that is zero most of the time: one chance in
// oneIn of drawing 1..max.
func pick(rng *rand.Rand, oneIn, max int) int {
	if rng.Intn(oneIn) != 0 {
		return 0
	}
	return 1 + rng.Intn(max)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // flushed and closed below on success

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
