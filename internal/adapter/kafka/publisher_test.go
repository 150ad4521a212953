package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firewatch-kr/wildfire-report-service/internal/domain"
	"github.com/firewatch-kr/wildfire-report-service/internal/report"
)

func TestSerializeBundle(t *testing.T) {
	generated := time.Date(2026, 8, 27, 6, 30, 0, 0, time.UTC)
	bundle := &report.Bundle{
		BuildID:     "build-1",
		GeneratedAt: generated,
		Hourly:      []domain.HourlyCount{{Hour: 9, Count: 3}},
		Casualties:  []domain.CasualtyRecord{{Year: 2022, Deaths: 1, Injuries: 4}},
	}

	msg, err := serializeBundle(bundle)
	require.NoError(t, err)

	assert.Equal(t, []byte("build-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"build_id":"build-1"`)
	assert.Contains(t, string(msg.Value), `{"hour":9,"count":3}`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "generated_at", msg.Headers[0].Key)
	assert.Equal(t, []byte(generated.Format(time.RFC3339)), msg.Headers[0].Value)
	assert.Equal(t, "section_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("2"), msg.Headers[1].Value)
}

func TestSerializeBundleOmitsEmptyNationalSeries(t *testing.T) {
	bundle := &report.Bundle{BuildID: "build-2"}

	msg, err := serializeBundle(bundle)
	require.NoError(t, err)
	assert.NotContains(t, string(msg.Value), "yearly_national")
}
