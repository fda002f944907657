package reports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labour-dashboard/internal/models"
)

func TestGrievanceEnd(t *testing.T) {
	cases := []struct {
		name                          string
		beginning, received, disposed int
		want                          int
	}{
		{"simple balance", 10, 5, 3, 12},
		{"exact clearance", 5, 5, 10, 0},
		{"clamped at zero", 5, 0, 10, 0},
		{"all zero", 0, 0, 0, 0},
		{"nothing disposed", 7, 4, 0, 11},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, GrievanceEnd(c.beginning, c.received, c.disposed))
		})
	}
}

func TestRecalculateMonthly(t *testing.T) {
	rec := models.MonthlySummaryRecord{
		GrievanceBeginning: 8,
		GrievanceReceived:  12,
		GrievanceDisposed:  15,
		GrievanceEnd:       999, // stale client value must be overwritten
	}
	RecalculateMonthly(&rec)
	assert.Equal(t, models.Count(5), rec.GrievanceEnd)

	rec.GrievanceDisposed = 40
	RecalculateMonthly(&rec)
	assert.Equal(t, models.Count(0), rec.GrievanceEnd)
}

func TestValidateMonthly(t *testing.T) {
	rec := models.MonthlySummaryRecord{
		TotalIdentified: 10,
		NonHazardous:    6,
		Hazardous:       5,
	}
	v := ValidateMonthly(rec)
	assert.False(t, v.WorkNatureValid, "6+5 exceeds 10")
	assert.True(t, v.CompensationValid)
	assert.False(t, v.OK())
	assert.Contains(t, v.Details(), "workNature")

	rec.NonHazardous = 4
	v = ValidateMonthly(rec)
	assert.True(t, v.WorkNatureValid, "4+5 within 10")
	assert.True(t, v.OK())
	assert.Empty(t, v.Details())

	rec.MCMehtaSettled = 7
	rec.MCMehtaPending = 7
	v = ValidateMonthly(rec)
	assert.False(t, v.CompensationValid)
	assert.False(t, v.OK())
	assert.Contains(t, v.Details(), "compensation")
}

func TestValidateMonthlyBoundary(t *testing.T) {
	// Sums exactly equal to the total are allowed; only strict excess blocks.
	rec := models.MonthlySummaryRecord{
		TotalIdentified: 10,
		NonHazardous:    5,
		Hazardous:       5,
		MCMehtaSettled:  10,
	}
	assert.True(t, ValidateMonthly(rec).OK())
}

func TestNewMonthlySummary(t *testing.T) {
	rec := NewMonthlySummary(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "March", rec.Month)
	assert.Equal(t, "2024", rec.Year)
	assert.Equal(t, models.Count(0), rec.TotalIdentified)
	assert.Equal(t, models.Count(0), rec.GrievanceEnd)
}

// Form inputs arrive as strings as often as numbers; both must decode, and
// garbage coerces to zero instead of failing the request.
func TestCountCoercion(t *testing.T) {
	var rec models.MonthlySummaryRecord
	body := `{
		"month": "March", "year": "2024",
		"totalIdentified": "12",
		"nonHazardous": 7,
		"hazardous": "",
		"grievanceBeginning": "5",
		"grievanceReceived": null,
		"grievanceDisposed": "ten"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &rec))

	assert.Equal(t, models.Count(12), rec.TotalIdentified)
	assert.Equal(t, models.Count(7), rec.NonHazardous)
	assert.Equal(t, models.Count(0), rec.Hazardous)
	assert.Equal(t, models.Count(5), rec.GrievanceBeginning)
	assert.Equal(t, models.Count(0), rec.GrievanceReceived)
	assert.Equal(t, models.Count(0), rec.GrievanceDisposed)

	RecalculateMonthly(&rec)
	assert.Equal(t, models.Count(5), rec.GrievanceEnd)
}

func TestCountMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(models.Count(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(out))
}
