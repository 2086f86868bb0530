package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/affectlab/facemeter/pkg/report"
	"github.com/affectlab/facemeter/pkg/sample"
	"github.com/affectlab/facemeter/pkg/stats"
)

// Result is the terminal success payload of a batch run.
type Result struct {
	Table   *sample.Table
	Summary stats.Summary
	Report  report.Report

	// Export paths; empty when the corresponding export failed
	// (export failures are non-fatal).
	CSVPath    string
	ReportPath string
}

// Run performs a complete batch analysis: open, extract, summarize,
// build the report, and export. Progress milestones are emitted at each
// stage. The run either completes as a whole or returns an error; the
// internal partial table is not exposed across a failure.
func (s *Sampler) Run(ctx context.Context, videoPath, outputDir, prefix string, p Progress) (*Result, error) {
	if p == nil {
		p = NopProgress{}
	}

	p.Log("Initializing video emotion analysis...")
	src, err := OpenFile(videoPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.RunSource(ctx, src, videoPath, outputDir, prefix, p)
}

// RunSource is Run over an already-open source. The source description
// is used in the report; the caller retains ownership of src.
func (s *Sampler) RunSource(ctx context.Context, src VideoSource, source, outputDir, prefix string, p Progress) (*Result, error) {
	if p == nil {
		p = NopProgress{}
	}

	p.Update(MilestoneExtract, "Extracting emotions from video...")
	table := s.Extract(ctx, src)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSamples, source)
	}

	p.Update(MilestoneProcess, "Processing emotion data...")
	samples := table.Samples()

	p.Update(MilestoneStats, "Calculating statistics...")
	summary, err := stats.Summarize(samples)
	if err != nil {
		return nil, err
	}

	p.Update(MilestoneReport, "Building report...")
	rep := report.Build(source, samples, summary)

	p.Update(MilestoneSave, "Saving results...")
	res := &Result{Table: table, Summary: summary, Report: rep}

	csvPath := filepath.Join(outputDir, report.DefaultCSVName(prefix))
	if err := report.ExportCSV(csvPath, samples); err != nil {
		p.Log(fmt.Sprintf("CSV export failed: %v", err))
	} else {
		res.CSVPath = csvPath
		p.Log("Data saved to: " + csvPath)
	}

	reportPath := filepath.Join(outputDir, report.DefaultReportName(prefix))
	if err := report.ExportText(reportPath, rep); err != nil {
		p.Log(fmt.Sprintf("Report export failed: %v", err))
	} else {
		res.ReportPath = reportPath
		p.Log("Report saved to: " + reportPath)
	}

	p.Update(MilestoneDone, "Analysis complete!")
	return res, nil
}
