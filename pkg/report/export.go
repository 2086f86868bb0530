package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{
	"timestamp_seconds",
	"confidence_percentage",
	"nervousness_percentage",
	"dominant_emotion",
	"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral",
}

// DefaultCSVName returns the default export filename for the given
// prefix: <prefix>_<YYYYMMDD_HHMMSS>.csv.
func DefaultCSVName(prefix string) string {
	return fmt.Sprintf("%s_%s.csv", prefix, time.Now().Format("20060102_150405"))
}

// DefaultReportName returns the default text-report filename for the
// given prefix.
func DefaultReportName(prefix string) string {
	return fmt.Sprintf("%s_report_%s.txt", prefix, time.Now().Format("20060102_150405"))
}

// ExportCSV writes one row per sample to path, with a header row,
// comma-separated, UTF-8.
func ExportCSV(path string, samples []sample.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}

	row := make([]string, len(csvHeader))
	for _, s := range samples {
		row[0] = formatFloat(s.Timestamp)
		row[1] = strconv.FormatFloat(s.Confidence, 'f', 1, 64)
		row[2] = strconv.FormatFloat(s.Nervousness, 'f', 1, 64)
		row[3] = string(s.Dominant)
		for i, l := range emotion.Labels {
			row[4+i] = formatFloat(s.Emotions[l])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("report: write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

// ExportText renders the report and writes it to path.
func ExportText(path string, r Report) error {
	if err := os.WriteFile(path, []byte(Render(r)), 0o644); err != nil {
		return fmt.Errorf("report: write text report: %w", err)
	}
	return nil
}

// Render produces the human-readable text form of a report.
func Render(r Report) string {
	var b strings.Builder
	rule := strings.Repeat("=", 40)

	fmt.Fprintf(&b, "%s\nVIDEO EMOTION ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Analysis Date: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	fmt.Fprintf(&b, "Total Duration: %s seconds\n", formatFloat(r.Summary.TotalDuration))
	fmt.Fprintf(&b, "Frames Analyzed: %d\n\n", r.FrameCount)

	fmt.Fprintf(&b, "CONFIDENCE METRICS:\n------------------\n")
	fmt.Fprintf(&b, "Median Confidence: %.1f%%\n", r.Summary.ConfidenceMedian)
	fmt.Fprintf(&b, "Average Confidence: %.1f%%\n", r.Summary.ConfidenceMean)
	fmt.Fprintf(&b, "Standard Deviation: %.1f%%\n", r.Summary.ConfidenceStd)
	fmt.Fprintf(&b, "Maximum Confidence: %.1f%%\n", r.Summary.ConfidenceMax)
	fmt.Fprintf(&b, "Minimum Confidence: %.1f%%\n\n", r.Summary.ConfidenceMin)

	fmt.Fprintf(&b, "NERVOUSNESS METRICS:\n-------------------\n")
	fmt.Fprintf(&b, "Median Nervousness: %.1f%%\n", r.Summary.NervousnessMedian)
	fmt.Fprintf(&b, "Average Nervousness: %.1f%%\n", r.Summary.NervousnessMean)
	fmt.Fprintf(&b, "Standard Deviation: %.1f%%\n", r.Summary.NervousnessStd)
	fmt.Fprintf(&b, "Maximum Nervousness: %.1f%%\n", r.Summary.NervousnessMax)
	fmt.Fprintf(&b, "Minimum Nervousness: %.1f%%\n\n", r.Summary.NervousnessMin)

	fmt.Fprintf(&b, "OVERALL ASSESSMENT:\n------------------\n")
	fmt.Fprintf(&b, "Dominant Emotion: %s\n", r.Summary.DominantOverall)
	fmt.Fprintf(&b, "Overall Confidence Level: %s\n", r.ConfidenceLevel)
	fmt.Fprintf(&b, "Overall Nervousness Level: %s\n\n", r.NervousnessLevel)

	fmt.Fprintf(&b, "KEY INSIGHTS:\n------------\n")
	fmt.Fprintf(&b, "The subject showed %s throughout the recording.\n", r.ConfidenceNarrative)
	fmt.Fprintf(&b, "Nervousness levels were %s.\n", r.NervousnessNarrative)
	fmt.Fprintf(&b, "The most prevalent emotion was %s.\n", r.Summary.DominantOverall)
	fmt.Fprintf(&b, "Emotional variability suggests %s.\n\n", r.StabilityNarrative)

	fmt.Fprintf(&b, "DETAILED EMOTION BREAKDOWN:\n--------------------------\n")
	for _, l := range emotion.Labels {
		ls := r.Breakdown[l]
		fmt.Fprintf(&b, "%s: %.1f%% (avg), %.1f%% (peak)\n", titleCase(string(l)), ls.Mean, ls.Peak)
	}

	return b.String()
}

// formatFloat trims trailing zeros: integer timestamps print as "3",
// fractional ones as "3.5".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
