package service

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
	"github.com/brewline/cafe-pos/internal/pkg/importer"
)

// uploads stores the original file of every bulk import when an archive is
// configured.
type uploads struct {
	archive ports.UploadArchive
	logger  zerolog.Logger
}

func (u uploads) keep(ctx context.Context, kind, outletID string, f ports.ImportFile) bool {
	if u.archive == nil {
		return false
	}
	key := fmt.Sprintf("%s/%s/%s/%s%s", kind, outletID, time.Now().UTC().Format("2006-01-02"), uuid.NewString(), filepath.Ext(f.Filename))
	if err := u.archive.Put(ctx, key, bytes.NewReader(f.Content), int64(len(f.Content)), contentTypeFor(f.Filename)); err != nil {
		u.logger.Warn().Err(err).Str("key", key).Msg("failed to archive upload")
		return false
	}
	return true
}

func contentTypeFor(filename string) string {
	switch filepath.Ext(filename) {
	case ".xlsx", ".xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv"
	}
}

func readUpload(f ports.ImportFile) ([][]string, error) {
	if len(f.Content) == 0 {
		return nil, domain.NewValidationError("uploaded file is empty")
	}
	rows, err := importer.ReadRows(f.Filename, f.Content)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return rows, nil
}

func summarize[T any](res importer.Result[T], imported int, archived bool) *ports.ImportSummary {
	out := &ports.ImportSummary{
		Imported:  imported,
		Processed: res.Processed,
		Total:     round2(res.Total),
		Errors:    make([]ports.ImportRowIssue, 0, len(res.Errors)),
		Archived:  archived,
	}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, ports.ImportRowIssue{Line: e.Line, Reason: e.Reason})
	}
	return out
}

// dateRange turns query bounds into a filter; end is inclusive of its whole day.
func dateRange(outletID string, start, end time.Time) (ports.ListFilter, error) {
	f := ports.ListFilter{OutletID: outletID, From: start}
	if !end.IsZero() {
		f.To = domain.DayOf(end).Add(24*time.Hour - time.Nanosecond)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, domain.NewValidationError("end must not be before start")
	}
	return f, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
