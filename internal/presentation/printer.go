package presentation

import (
	"fmt"
	"io"
	"strings"

	"e2fn/internal/config"
	"e2fn/internal/domain"

	"github.com/dustin/go-humanize"
)

const indent = "    "

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintHeader(job config.Job) {
	fmt.Fprintf(p.Writer, "source         %s\n", job.SourceDir)
	fmt.Fprintf(p.Writer, "destination    %s\n", job.DestDir)
	fmt.Fprintf(p.Writer, "format         %s\n", job.Format.Pattern())
}

// PrintReport writes one line per report category: the number of files,
// or in verbose mode the file names one per line.
func (p Printer) PrintReport(report domain.Report, dryRun bool) {
	p.printCategory("Without EXIF", report.NoMetadata)
	p.printCategory("With same datetime", report.Collisions)
	p.printCategory("Unable to copy", report.CopyFailed)
	p.printCategory("Is not file", report.NotRegular)
	p.printCategory("Invalid datetime", report.InvalidTimestamp)

	if p.Verbose && len(report.Copied) > 0 {
		fmt.Fprintln(p.Writer, "Renamed:")
		for _, line := range formatRenames(report.Copied) {
			fmt.Fprintln(p.Writer, indent+line)
		}
	}
	fmt.Fprintln(p.Writer, summaryLine(report, dryRun))
}

func (p Printer) printCategory(label string, names []string) {
	if !p.Verbose {
		fmt.Fprintf(p.Writer, "%s: %d\n", label, len(names))
		return
	}
	if len(names) == 0 {
		fmt.Fprintf(p.Writer, "%s: -\n", label)
		return
	}
	fmt.Fprintf(p.Writer, "%s:\n%s%s\n", label, indent, strings.Join(names, "\n"+indent))
}

func formatRenames(items []domain.Rename) []string {
	width := 0
	for _, item := range items {
		width = max(width, len(item.Source))
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%-*s  ->  %s", width, item.Source, item.Target))
	}
	return lines
}

func summaryLine(report domain.Report, dryRun bool) string {
	verb := "Copied"
	if dryRun {
		verb = "Would copy"
	}
	return fmt.Sprintf("%s %d files (%s), skipped %d.",
		verb, len(report.Copied), humanize.Bytes(uint64(report.CopiedBytes())), report.Skipped())
}
