// Package pipeline runs one report end to end: ingest the shift exports, merge
// them onto the machine order, assign codes and lots, inject formulas and
// render the workbook.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/orayew2002/loom-report/codes"
	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/formula"
	"github.com/orayew2002/loom-report/ingest"
	"github.com/orayew2002/loom-report/lot"
	"github.com/orayew2002/loom-report/merge"
	"github.com/orayew2002/loom-report/report"
)

var (
	ErrMissingShiftFile = errors.New("shift file not provided")
	ErrNoShiftData      = errors.New("no usable rows in either shift file")
)

// Upload is one input file as received.
type Upload struct {
	Name string
	Data []byte
}

// Inputs are the files of one run. A and B are required, C is optional.
type Inputs struct {
	A, B, C *Upload
}

// Output is the rendered report plus what the run noticed on the way.
type Output struct {
	FileName      string
	Data          []byte
	HasSupplement bool
	PrimaryRows   int
	ExtraRows     int
	Warnings      []ingest.Warning
	// Partial is set when a late report pass failed; Data is the workbook
	// without that pass's content.
	Partial bool
}

type runner struct {
	clock func() time.Time
}

// Option customises a run.
type Option func(*runner)

// WithClock replaces time.Now as the source of the run time.
func WithClock(clock func() time.Time) Option {
	return func(r *runner) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// Run builds the report for in.
func Run(cfg config.Config, in Inputs, logger log.Logger, opts ...Option) (*Output, error) {
	r := runner{clock: time.Now}
	for _, opt := range opts {
		opt(&r)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if in.A == nil {
		return nil, fmt.Errorf("shift A: %w", ErrMissingShiftFile)
	}
	if in.B == nil {
		return nil, fmt.Errorf("shift B: %w", ErrMissingShiftFile)
	}

	out := &Output{}

	read := func(u *Upload, schema []domain.Field) (domain.Table, error) {
		res, err := ingest.Read(u.Data, u.Name, schema)
		for _, w := range res.Warnings {
			level.Warn(logger).Log("msg", "ingest warning", "file", w.File, "kind", w.Kind, "detail", w.String())
		}
		out.Warnings = append(out.Warnings, res.Warnings...)
		if err != nil {
			return domain.Table{}, fmt.Errorf("ingest: %w", err)
		}
		level.Debug(logger).Log("msg", "ingested", "file", u.Name, "rows", len(res.Table.Records))
		return res.Table, nil
	}

	a, err := read(in.A, domain.ShiftFields)
	if err != nil {
		return nil, err
	}
	b, err := read(in.B, domain.ShiftFields)
	if err != nil {
		return nil, err
	}
	if a.Empty() && b.Empty() {
		return nil, ErrNoShiftData
	}

	var c *domain.Table
	if in.C != nil {
		t, err := read(in.C, domain.SupplementFields)
		if err != nil {
			return nil, err
		}
		if t.Empty() {
			level.Info(logger).Log("msg", "supplement file has no rows, skipped", "file", in.C.Name)
		} else {
			c = &t
		}
	}
	out.HasSupplement = c != nil

	order := merge.NewOrder(cfg.MachineOrder)
	merger := merge.NewMerger(order)
	primary := merger.Primary(&a, &b, c)
	extra := merger.Extra(&a, &b)
	out.PrimaryRows, out.ExtraRows = primary.Len(), extra.Len()

	loc := cfg.Location()
	now := r.clock().In(loc)

	assigner := lot.New(codes.New(cfg.CodeMapping, cfg.CodeSynonyms), order, lot.Options{
		Location:    loc,
		MaxSequence: cfg.MaxLotSequence,
	})
	assigner.AssignProductionCodes(now, &primary, &extra)
	if err := assigner.AssignLotNumbers(now, &primary, &extra); err != nil {
		return nil, fmt.Errorf("assign lots: %w", err)
	}

	formula.Inject(&primary, 2)
	formula.Inject(&extra, cfg.Layout.ExtraDataStartRow)

	writer := report.New(report.Options{
		SheetName:     cfg.SheetName,
		Layout:        cfg.Layout,
		Location:      loc,
		RunTime:       now,
		HasSupplement: out.HasSupplement,
	})
	data, err := writer.Write(&primary, &extra)
	if err != nil {
		var pe *report.PassError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("write report: %w", err)
		}
		level.Error(logger).Log("msg", "report pass failed, keeping earlier output", "err", err)
		out.Partial = true
	}

	out.Data = data
	out.FileName = report.FileName(cfg.OutputPrefix, now)

	level.Info(logger).Log(
		"msg", "report built",
		"file", out.FileName,
		"primary_rows", out.PrimaryRows,
		"extra_rows", out.ExtraRows,
		"supplement", out.HasSupplement,
	)

	return out, nil
}
