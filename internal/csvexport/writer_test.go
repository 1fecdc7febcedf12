package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mscp/internal/domain"
)

func TestWriteKpiHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteKpiHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 9)
	assert.Equal(t, "Sub-Cluster", row[0])
	assert.Equal(t, "Disaggregation", row[8])
}

func TestWriteKpiRows(t *testing.T) {
	row := KpiRow{
		SubClusterName: "Health Services",
		CategoryName:   "Maternal Health",
		Item: domain.KpiItem{
			ID:             uuid.New(),
			Title:          "ANC Visits",
			Description:    "Antenatal care visits completed",
			CurrentValue:   450,
			TargetValue:    1000,
			Unit:           "visits",
			Disaggregation: domain.StringList{"province", "age group"},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteKpiRows([]KpiRow{row}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	rec, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, rec, 9)
	assert.Equal(t, "Health Services", rec[0])
	assert.Equal(t, "Maternal Health", rec[1])
	assert.Equal(t, "ANC Visits", rec[2])
	assert.Equal(t, "450.00", rec[4])
	assert.Equal(t, "1000.00", rec[5])
	assert.Equal(t, "visits", rec[6])
	assert.Equal(t, "45.00", rec[7])
	assert.Equal(t, "province; age group", rec[8])
}

func TestWriteKpiRows_ZeroTarget(t *testing.T) {
	row := KpiRow{
		SubClusterName: "Health Services",
		Item: domain.KpiItem{
			Title:        "Unset Target",
			CurrentValue: 50,
			TargetValue:  0,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteKpiRows([]KpiRow{row}))
	w.Flush()

	r := csv.NewReader(&buf)
	rec, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "0.00", rec[7])
}

func TestWriteReportRows_Submitted(t *testing.T) {
	actual := 150.0
	submittedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	row := ReportRow{
		ActionPlanTitle: "Expand ANC Coverage",
		StakeholderName: "HealthFirst NGO",
		KpiTitle:        "ANC Visits",
		QuarterName:     "Q3",
		PlannedValue:    100,
		Status:          domain.ReportSubmitted,
		Report: domain.Report{
			ID:              uuid.New(),
			ActualValue:     &actual,
			ProgressSummary: "Exceeded quarterly plan",
			SubmittedAt:     &submittedAt,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReportHeader())
	require.NoError(t, w.WriteReportRows([]ReportRow{row}))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	header, err := r.Read()
	require.NoError(t, err)
	assert.Len(t, header, 10)

	rec, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, "Expand ANC Coverage", rec[0])
	assert.Equal(t, "HealthFirst NGO", rec[1])
	assert.Equal(t, "100.00", rec[4])
	assert.Equal(t, "150.00", rec[5])
	assert.Equal(t, "150.00", rec[6])
	assert.Equal(t, "Submitted", rec[7])
	assert.Equal(t, "Exceeded quarterly plan", rec[8])
	assert.Equal(t, "2026-03-10T09:00:00Z", rec[9])
}

func TestWriteReportRows_NoActualValue(t *testing.T) {
	row := ReportRow{
		ActionPlanTitle: "Expand ANC Coverage",
		KpiTitle:        "ANC Visits",
		QuarterName:     "Q4",
		PlannedValue:    100,
		Status:          domain.ReportDraft,
		Report:          domain.Report{ID: uuid.New()},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteReportRows([]ReportRow{row}))
	w.Flush()

	r := csv.NewReader(&buf)
	rec, err := r.Read()
	require.NoError(t, err)
	assert.Empty(t, rec[5])
	assert.Empty(t, rec[6])
	assert.Equal(t, "Draft", rec[7])
	assert.Empty(t, rec[9])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Health Services KPIs", "Health_Services_KPIs"},
		{"special chars", "FY 2026-27 / Q1 (Jul-Sep)", "FY_2026-27_Q1_Jul-Sep"},
		{"hyphens and underscores preserved", "my-export_2026", "my-export_2026"},
		{"consecutive underscores collapsed", "test___export", "test_export"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	filename := BuildFilename("Health Services KPIs")
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Health_Services_KPIs_"+today+".csv", filename)
}
