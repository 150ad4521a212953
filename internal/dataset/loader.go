// Package dataset loads tabular incident datasets from blob storage. A
// dataset is a keyed object in a bucket (file://, s3://, gs://) decoded by
// file extension: .xlsx via excelize, anything else as CSV.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob" // file:// driver, used by tests and local dev

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
)

// Loader reads keyed dataset objects from one bucket. Transient read failures
// are retried with exponential backoff; a missing object is permanent and
// fails immediately.
type Loader struct {
	bucket   *blob.Bucket
	retryMax uint64
	logger   *slog.Logger
}

// Open connects to the bucket behind bucketURL. Cloud drivers (s3blob,
// gcsblob) must be blank-imported by the binary that needs them.
func Open(ctx context.Context, bucketURL string, retryMax int, logger *slog.Logger) (*Loader, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("open dataset bucket %s: %w", bucketURL, err)
	}
	if retryMax < 0 {
		retryMax = 0
	}
	return &Loader{bucket: bucket, retryMax: uint64(retryMax), logger: logger}, nil
}

// Close releases the bucket connection.
func (l *Loader) Close() error {
	return l.bucket.Close()
}

// Load reads and decodes the dataset stored under key. The returned table
// carries the file's header verbatim; rows are normalized to the header
// width (short rows padded, long rows truncated).
func (l *Loader) Load(ctx context.Context, key string) (*domain.Table, error) {
	data, err := l.read(ctx, key)
	if err != nil {
		return nil, err
	}

	var table *domain.Table
	switch strings.ToLower(path.Ext(key)) {
	case ".xlsx":
		table, err = decodeXLSX(data)
	default:
		table, err = decodeCSV(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode dataset %s: %w", key, err)
	}

	l.logger.Info("dataset loaded",
		"key", key,
		"rows", table.NumRows(),
		"columns", len(table.Columns()))
	return table, nil
}

func (l *Loader) read(ctx context.Context, key string) ([]byte, error) {
	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		data, err := l.bucket.ReadAll(ctx, key)
		if err != nil {
			if gcerrors.Code(err) == gcerrors.NotFound {
				return nil, backoff.Permanent(fmt.Errorf("dataset %s not found: %w", key, err))
			}
			l.logger.Warn("dataset read failed, retrying",
				"key", key,
				"attempt", attempt,
				"error", err)
			return nil, err
		}
		return data, nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), l.retryMax)
	data, err := backoff.RetryWithData(op, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", key, err)
	}
	return data, nil
}

func decodeCSV(data []byte) (*domain.Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")) // UTF-8 BOM

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are normalized below

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, normalizeRow(rec, len(header)))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return domain.NewTable(header, rows), nil
}

func decodeXLSX(data []byte) (*domain.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	if len(all) == 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := all[0]
	rows := make([][]string, 0, len(all)-1)
	for _, rec := range all[1:] {
		rows = append(rows, normalizeRow(rec, len(header)))
	}
	return domain.NewTable(header, rows), nil
}

func normalizeRow(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	row := make([]string, width)
	copy(row, rec)
	return row
}
