package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labour-dashboard/internal/models"
)

func TestNewChildLabourRecordDefaults(t *testing.T) {
	now := time.Date(2024, time.May, 2, 10, 0, 0, 0, time.UTC)
	rec := NewChildLabourRecord(now)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2024-05-02", rec.CWCDate)
	assert.Equal(t, "2024-05-02", rec.FIRDate)
	assert.Equal(t, "Boy", rec.Gender)
	assert.Equal(t, "No", rec.DDDeposited)
	assert.Equal(t, "Never Enrolled", rec.SchoolingStatus)

	other := NewChildLabourRecord(now)
	assert.NotEqual(t, rec.ID, other.ID, "ids must be unique per case")
}

func TestNormalizeChildRecord(t *testing.T) {
	rec := NewChildLabourRecord(time.Now())
	rec.SchoolingStatus = "Regular"
	rec.PreviousSchoolName = "ZPHS Medak"

	NormalizeChildRecord(&rec)
	assert.Empty(t, rec.PreviousSchoolName, "previous school only applies to drop-outs")

	rec.SchoolingStatus = SchoolingDropOut
	rec.PreviousSchoolName = "ZPHS Medak"
	NormalizeChildRecord(&rec)
	assert.Equal(t, "ZPHS Medak", rec.PreviousSchoolName)

	blank := models.ChildLabourRecord{SchoolingStatus: SchoolingDropOut}
	NormalizeChildRecord(&blank)
	assert.NotEmpty(t, blank.ID, "missing ids are assigned")
}

func TestValidateChildBatch(t *testing.T) {
	assert.Contains(t, ValidateChildBatch(nil), "records", "empty batch is rejected")

	good := NewChildLabourRecord(time.Now())
	require.Empty(t, ValidateChildBatch([]models.ChildLabourRecord{good}))

	bad := NewChildLabourRecord(time.Now())
	bad.Gender = "Unknown"
	errs := ValidateChildBatch([]models.ChildLabourRecord{good, bad})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "records[1]")

	bad.Gender = "Girl"
	bad.ProsecutionStatus = "Dismissed"
	errs = ValidateChildBatch([]models.ChildLabourRecord{bad})
	assert.Contains(t, errs, "records[0]")
}
