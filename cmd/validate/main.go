// Command validate runs integrity checks over incident dataset files before
// they are promoted to a serving bucket: schema resolution, field parse
// rates, and the dense-domain invariants the report sections rely on.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -bucket-url file:///var/lib/wildfire/data \
//	  -regional-key regional.csv \
//	  -national-key national.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "gocloud.dev/blob/gcsblob" // gs:// dataset buckets
	_ "gocloud.dev/blob/s3blob"  // s3:// dataset buckets

	"github.com/firewatch-kr/wildfire-report-service/internal/aggregate"
	"github.com/firewatch-kr/wildfire-report-service/internal/dataset"
	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	bucketURL := flag.String("bucket-url", "", "blob bucket holding the datasets")
	regionalKey := flag.String("regional-key", "regional.csv", "regional dataset object key")
	nationalKey := flag.String("national-key", "", "national dataset object key (optional)")
	flag.Parse()

	if *bucketURL == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*bucketURL, *regionalKey, *nationalKey); code != 0 {
		os.Exit(code)
	}
}

func run(bucketURL, regionalKey, nationalKey string) int {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	loader, err := dataset.Open(ctx, bucketURL, 1, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open bucket: %v\n", err)
		return 1
	}
	defer loader.Close() //nolint:errcheck // process is exiting

	fmt.Println("=== Wildfire Dataset Integrity Validation ===")
	fmt.Println()

	regional, err := loader.Load(ctx, regionalKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load regional dataset: %v\n", err)
		return 1
	}
	fmt.Printf("regional: %d rows, %d columns\n", regional.NumRows(), len(regional.Columns()))

	var national *domain.Table
	if nationalKey != "" {
		national, err = loader.Load(ctx, nationalKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load national dataset: %v\n", err)
			return 1
		}
		fmt.Printf("national: %d rows, %d columns\n", national.NumRows(), len(national.Columns()))
	}

	phases := []*phase{
		validateSchema(regional, national),
		validateParseRates(regional),
		validateAggregates(regional),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateSchema checks that every logical field the report needs resolves
// against the dataset headers.
func validateSchema(regional, national *domain.Table) *phase {
	p := &phase{name: "schema resolution"}

	required := []domain.Field{
		domain.FieldDate, domain.FieldHour, domain.FieldCause,
		domain.FieldRegion, domain.FieldDeaths, domain.FieldInjuries,
		domain.FieldMobilizedTotal,
	}
	for _, f := range required {
		if _, err := regional.Resolve(f); err != nil {
			p.errorf("regional: %v", err)
		}
	}

	optional := []domain.Field{
		domain.FieldMobilizedPolice, domain.FieldMobilizedMilitary,
		domain.FieldMobilizedGeneralStaff, domain.FieldMobilizedOther,
		domain.FieldMobilizedFirefighting,
	}
	missing := 0
	for _, f := range optional {
		if col, _ := regional.Resolve(f); col < 0 {
			missing++
		}
	}
	if missing == len(optional) {
		p.errorf("regional: no mobilization role columns present (all panels would be zero)")
	}

	if national != nil {
		if _, err := national.Resolve(domain.FieldYear); err != nil {
			if _, err2 := national.Resolve(domain.FieldDate); err2 != nil {
				p.errorf("national: no year or date column: %v", err2)
			}
		}
		if _, err := national.Resolve(domain.FieldRegion); err != nil {
			p.errorf("national: %v", err)
		}
	}
	return p
}

// validateParseRates reports fields whose rows mostly fail to parse: a
// dataset that silently drops most of its rows is almost always the wrong
// file, not defective data.
func validateParseRates(regional *domain.Table) *phase {
	p := &phase{name: "field parse rates"}
	n := regional.NumRows()
	if n == 0 {
		p.errorf("no rows")
		return p
	}

	dateCol, err := regional.Resolve(domain.FieldDate)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	hourCol, err := regional.Resolve(domain.FieldHour)
	if err != nil {
		p.errorf("%v", err)
		return p
	}

	dates, hours := 0, 0
	for row := 0; row < n; row++ {
		if _, _, ok := domain.ParseYearMonth(regional.Value(row, dateCol)); ok {
			dates++
		}
		if _, ok := domain.ParseHour(regional.Value(row, hourCol)); ok {
			hours++
		}
	}
	fmt.Printf("parse rates: dates %d/%d, hours %d/%d\n", dates, n, hours, n)

	if dates*2 < n {
		p.errorf("only %d of %d dates parse", dates, n)
	}
	if hours*2 < n {
		p.errorf("only %d of %d hours parse", hours, n)
	}
	return p
}

// validateAggregates runs the real aggregation code and checks the dense
// domain guarantees every chart fragment indexes by.
func validateAggregates(regional *domain.Table) *phase {
	p := &phase{name: "dense-domain invariants"}

	hourly, err := aggregate.HourlyCounts(regional)
	if err != nil {
		p.errorf("hourly: %v", err)
	} else if len(hourly) != 24 {
		p.errorf("hourly: got %d rows, want 24", len(hourly))
	}

	monthly, err := aggregate.MonthlyCounts(regional, aggregate.YearRange{})
	if err != nil {
		p.errorf("monthly: %v", err)
	} else if len(monthly) != 12 {
		p.errorf("monthly: got %d rows, want 12", len(monthly))
	}

	matrix, err := aggregate.CauseHourMatrix(regional, aggregate.DefaultTopCauses)
	if err != nil {
		p.errorf("cause matrix: %v", err)
	} else if len(matrix)%24 != 0 {
		p.errorf("cause matrix: %d rows is not a multiple of 24", len(matrix))
	}

	mob, err := aggregate.MobilizationRollup(regional)
	if err != nil {
		p.errorf("mobilization: %v", err)
	} else if len(mob)%12 != 0 {
		p.errorf("mobilization: %d rows is not a multiple of 12", len(mob))
	}

	casualties, err := aggregate.CasualtyByYear(regional)
	if err != nil {
		p.errorf("casualties: %v", err)
	} else {
		for _, rec := range casualties {
			if rec.Injuries < 0 {
				p.errorf("casualties: year %d has negative injuries %d", rec.Year, rec.Injuries)
			}
		}
	}
	return p
}
