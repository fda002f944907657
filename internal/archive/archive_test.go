package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labour-dashboard/internal/models"
)

func TestNewSubmission(t *testing.T) {
	rec := models.MonthlySummaryRecord{Month: "March", Year: "2024", TotalIdentified: 12}

	sub, err := NewSubmission(KindMonthlySummary, "usr-5", "ALO", "Area 1", "March 2024", rec)
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, KindMonthlySummary, sub.Kind)
	assert.Equal(t, "March 2024", sub.Period)
	assert.WithinDuration(t, time.Now().UTC(), sub.SubmittedAt, time.Minute)
	assert.Contains(t, string(sub.Payload), `"totalIdentified":12`)
}

func TestLocalSinkSaveAndList(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := NewSubmission(KindMonthlySummary, "usr-5", "ALO", "Area 1", "March 2024",
		models.MonthlySummaryRecord{Month: "March", Year: "2024"})
	require.NoError(t, err)
	first.SubmittedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, sink.Save(ctx, first))

	second, err := NewSubmission(KindActSummary, "usr-4", "ACL", "Circle 1", "March 2024",
		models.ActSummaryReport{Month: "March", Year: "2024"})
	require.NoError(t, err)
	require.NoError(t, sink.Save(ctx, second))

	all, err := sink.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")

	monthly, err := sink.List(ctx, KindMonthlySummary)
	require.NoError(t, err)
	require.Len(t, monthly, 1)
	assert.Equal(t, first.ID, monthly[0].ID)

	none, err := sink.List(ctx, KindChildLabour)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLocalSinkListEmptyDir(t *testing.T) {
	sink, err := NewLocalSink(t.TempDir())
	require.NoError(t, err)

	subs, err := sink.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, subs)
}
