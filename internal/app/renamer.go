package app

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	"e2fn/internal/config"
	"e2fn/internal/domain"
	appErrors "e2fn/internal/errors"
	"e2fn/internal/logging"
	"e2fn/internal/naming"
)

// ProgressFunc is called after each image entry has been handled.
type ProgressFunc func(current, total int, name string)

// Renamer copies the images of a source directory into the destination
// directory under names derived from their capture time. Entries are
// handled one at a time.
type Renamer struct {
	FS         FileSystem
	Metadata   MetadataReader
	Logger     logging.Logger
	OnProgress ProgressFunc
}

// run carries the state of a single Run call.
type run struct {
	job     config.Job
	report  domain.Report
	claimed map[string]bool
}

func (r *Renamer) Run(ctx context.Context, job config.Job) (domain.Report, error) {
	if r.FS == nil || r.Metadata == nil {
		return domain.Report{}, errors.New("renamer requires FS and Metadata")
	}
	if job.Format == nil {
		return domain.Report{}, errors.New("renamer requires a format")
	}

	stop := r.Logger.Measure("Renaming images")
	defer stop()

	entries, err := r.scan(job)
	if err != nil {
		return domain.Report{}, err
	}
	r.Logger.Verbosef("Found %d image entries in %s", len(entries), job.SourceDir)

	state := &run{job: job, claimed: map[string]bool{}}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return state.report, appErrors.Wrap(appErrors.Canceled, "rename", job.SourceDir, err)
		}
		if err := r.process(ctx, state, entry); err != nil {
			return state.report, err
		}
		if r.OnProgress != nil {
			r.OnProgress(i+1, len(entries), entry.Name)
		}
	}

	r.Logger.Verbosef("Copied %d, collisions %d, without metadata %d, invalid timestamps %d, failed %d, not files %d",
		len(state.report.Copied), len(state.report.Collisions), len(state.report.NoMetadata),
		len(state.report.InvalidTimestamp), len(state.report.CopyFailed), len(state.report.NotRegular))
	return state.report, nil
}

// scan lists the image entries of the source directory sorted by name.
func (r *Renamer) scan(job config.Job) ([]domain.ImageEntry, error) {
	dirEntries, err := r.FS.ReadDir(job.SourceDir)
	if err != nil {
		return nil, appErrors.Wrap(appErrors.IOFailure, "read source", job.SourceDir, err)
	}

	var entries []domain.ImageEntry
	for _, d := range dirEntries {
		if !domain.IsImageName(d.Name(), job.FoldCase) {
			continue
		}
		entries = append(entries, domain.NewImageEntry(filepath.Join(job.SourceDir, d.Name())))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func (r *Renamer) process(ctx context.Context, state *run, entry domain.ImageEntry) error {
	job := state.job
	report := &state.report

	info, err := r.FS.Stat(entry.Path)
	if err != nil || !info.Mode().IsRegular() {
		r.Logger.Verbosef("%s is not a regular file", entry.Name)
		report.NotRegular = append(report.NotRegular, entry.Name)
		return nil
	}

	captured, err := r.Metadata.CaptureTime(ctx, entry.Path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return appErrors.Wrap(appErrors.Canceled, "read metadata", entry.Path, err)
		}
		return appErrors.Wrap(appErrors.IOFailure, "read metadata", entry.Path, err)
	}
	if !captured.Present {
		r.Logger.Verbosef("%s has no capture time", entry.Name)
		report.NoMetadata = append(report.NoMetadata, entry.Name)
		return nil
	}

	takenAt, err := captured.Parse()
	if err != nil {
		if job.Strict {
			return appErrors.Wrap(appErrors.MetadataFailure, "parse capture time", entry.Path, err)
		}
		r.Logger.Warnf("%s: malformed capture time %q", entry.Name, captured.Value)
		report.InvalidTimestamp = append(report.InvalidTimestamp, entry.Name)
		return nil
	}

	stem := job.Format.Stem(takenAt)
	target, attempt, err := r.resolve(state, stem, entry.Ext)
	if err != nil {
		return err
	}
	state.claimed[target] = true
	if attempt > 0 {
		report.Collisions = append(report.Collisions, target)
	}

	if job.DryRun {
		r.Logger.Verbosef("Would copy %s to %s", entry.Name, target)
		report.Copied = append(report.Copied, domain.Rename{Source: entry.Name, Target: target, Bytes: info.Size()})
		return nil
	}

	targetPath := filepath.Join(job.DestDir, target)
	written, err := r.FS.CopyFile(entry.Path, targetPath)
	if err != nil {
		r.Logger.Warnf("copy %s to %s: %v", entry.Name, target, err)
		report.CopyFailed = append(report.CopyFailed, entry.Name)
		return nil
	}
	if !r.verify(job, entry.Path, targetPath) {
		r.Logger.Warnf("copy of %s to %s did not verify", entry.Name, target)
		report.CopyFailed = append(report.CopyFailed, entry.Name)
		return nil
	}

	r.Logger.Verbosef("Copied %s to %s", entry.Name, target)
	report.Copied = append(report.Copied, domain.Rename{Source: entry.Name, Target: target, Bytes: written})
	return nil
}

// resolve finds the first free name for stem+ext in the destination and
// returns it with the number of the attempt that succeeded (0 = no suffix).
// During a dry run names claimed earlier in the same run count as taken.
func (r *Renamer) resolve(state *run, stem, ext string) (string, int, error) {
	for attempt := 0; ; attempt++ {
		name := naming.Candidate(stem, ext, attempt)
		if state.job.DryRun && state.claimed[name] {
			continue
		}
		path := filepath.Join(state.job.DestDir, name)
		exists, err := r.FS.Exists(path)
		if err != nil {
			return "", 0, appErrors.Wrap(appErrors.IOFailure, "probe destination", path, err)
		}
		if !exists {
			return name, attempt, nil
		}
	}
}

func (r *Renamer) verify(job config.Job, src, dst string) bool {
	exists, err := r.FS.Exists(dst)
	if err != nil || !exists {
		return false
	}
	if !job.VerifyHash {
		return true
	}

	srcSum, err := r.FS.Checksum(src)
	if err != nil {
		return false
	}
	dstSum, err := r.FS.Checksum(dst)
	if err != nil {
		return false
	}
	return srcSum == dstSum
}
