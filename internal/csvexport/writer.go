package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mscp/internal/domain"
	"mscp/internal/kpi"
	"mscp/internal/tracker"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// kpiColumns defines the KPI catalog export header row.
var kpiColumns = []string{
	"Sub-Cluster",
	"Category",
	"KPI",
	"Description",
	"Current Value",
	"Target Value",
	"Unit",
	"Progress (%)",
	"Disaggregation",
}

// reportColumns defines the quarterly report export header row.
var reportColumns = []string{
	"Action Plan",
	"Stakeholder",
	"KPI",
	"Quarter",
	"Planned Value",
	"Actual Value",
	"Achievement (%)",
	"Status",
	"Progress Summary",
	"Submitted At",
}

// KpiRow is a KPI item resolved to display names for export.
type KpiRow struct {
	SubClusterName string
	CategoryName   string
	Item           domain.KpiItem
}

// ReportRow is a quarterly report joined with its plan context for export.
type ReportRow struct {
	ActionPlanTitle string
	StakeholderName string
	KpiTitle        string
	QuarterName     string
	PlannedValue    float64
	Status          domain.ReportStatus
	Report          domain.Report
}

// Writer wraps csv.Writer for exporting KPI and report data as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteKpiHeader writes the KPI catalog header row.
func (w *Writer) WriteKpiHeader() error {
	return w.csv.Write(kpiColumns)
}

// WriteKpiRows converts a batch of KPI rows to CSV and writes them.
func (w *Writer) WriteKpiRows(rows []KpiRow) error {
	for i := range rows {
		if err := w.csv.Write(kpiToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// WriteReportHeader writes the report export header row.
func (w *Writer) WriteReportHeader() error {
	return w.csv.Write(reportColumns)
}

// WriteReportRows converts a batch of report rows to CSV and writes them.
func (w *Writer) WriteReportRows(rows []ReportRow) error {
	for i := range rows {
		if err := w.csv.Write(reportToRecord(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func kpiToRecord(row *KpiRow) []string {
	rec := make([]string, len(kpiColumns))
	rec[0] = row.SubClusterName
	rec[1] = row.CategoryName
	rec[2] = row.Item.Title
	rec[3] = row.Item.Description
	rec[4] = formatValue(row.Item.CurrentValue)
	rec[5] = formatValue(row.Item.TargetValue)
	rec[6] = row.Item.Unit
	rec[7] = formatValue(kpi.Progress(row.Item.CurrentValue, row.Item.TargetValue))
	rec[8] = strings.Join(row.Item.Disaggregation, "; ")
	return rec
}

// reportToRecord converts a single report row to a CSV record. Actual value
// and achievement columns are left empty until a value is reported.
func reportToRecord(row *ReportRow) []string {
	rec := make([]string, len(reportColumns))
	rec[0] = row.ActionPlanTitle
	rec[1] = row.StakeholderName
	rec[2] = row.KpiTitle
	rec[3] = row.QuarterName
	rec[4] = formatValue(row.PlannedValue)
	rec[7] = string(row.Status)
	rec[8] = row.Report.ProgressSummary
	rec[9] = formatTime(row.Report.SubmittedAt)

	if row.Report.ActualValue != nil {
		rec[5] = formatValue(*row.Report.ActualValue)
		rec[6] = formatValue(tracker.Achievement(*row.Report.ActualValue, row.PlannedValue))
	}
	return rec
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an export name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
