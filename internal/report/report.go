// Package report writes the diagnostic shape report for a pair of lenses.
//
// The output is one line per lens, A first, holding the temp, precip and
// agri series lengths:
//
//	A lens: 2 1 0
//	B lens: 0 3 1
package report

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"serieslens/internal/lens"
)

// Labels used for the two reported lenses.
const (
	LabelA = "A"
	LabelB = "B"
)

// MissingLensError reports that one of the two lenses was not supplied.
type MissingLensError struct {
	Label string
}

func (e *MissingLensError) Error() string {
	return fmt.Sprintf("lens %s is missing", e.Label)
}

// Reporter writes diagnostic lines to an output. It keeps no state between
// calls.
type Reporter struct {
	out    io.Writer
	logger *zap.Logger
}

// New creates a Reporter writing to out. A nil logger is replaced by a no-op
// logger.
func New(out io.Writer, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{out: out, logger: logger}
}

// Report writes the A and B lines. Both lenses are checked before anything
// is written, so a failed report leaves no partial output.
func (r *Reporter) Report(a, b *lens.Lens) error {
	entries := []struct {
		label string
		lens  *lens.Lens
	}{
		{LabelA, a},
		{LabelB, b},
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line, err := Line(e.label, e.lens)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	for i, line := range lines {
		if _, err := io.WriteString(r.out, line+"\n"); err != nil {
			return fmt.Errorf("writing %s lens report: %w", entries[i].label, err)
		}
		r.logger.Debug("Reported lens",
			zap.String("label", entries[i].label),
			zap.Ints("lengths", lengths(entries[i].lens)))
	}

	return nil
}

// ReportFrom reports the lenses registered as A and B in mgr. An
// unregistered lens is reported as missing.
func (r *Reporter) ReportFrom(mgr lens.Manager) error {
	return r.Report(lookup(mgr, LabelA), lookup(mgr, LabelB))
}

func lookup(mgr lens.Manager, name string) *lens.Lens {
	l, exists := mgr.Get(name)
	if !exists {
		return nil
	}
	return &l
}

// Line formats the report line for a single lens.
func Line(label string, l *lens.Lens) (string, error) {
	if l == nil {
		return "", &MissingLensError{Label: label}
	}
	if err := l.Validate(); err != nil {
		var mfe *lens.MissingFieldError
		if errors.As(err, &mfe) && mfe.Lens == "" {
			mfe.Lens = label
		}
		return "", err
	}

	n := l.Lengths()
	return fmt.Sprintf("%s lens: %d %d %d", label, n[0], n[1], n[2]), nil
}

func lengths(l *lens.Lens) []int {
	n := l.Lengths()
	return n[:]
}
