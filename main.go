package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/orayew2002/loom-report/config"
	"github.com/orayew2002/loom-report/domain"
	"github.com/orayew2002/loom-report/merge"
	"github.com/orayew2002/loom-report/pipeline"
	"github.com/orayew2002/loom-report/sample"
)

func main() {
	shiftA := flag.String("a", "", "path to the shift A export (xlsx or csv)")
	shiftB := flag.String("b", "", "path to the shift B export (xlsx or csv)")
	shiftC := flag.String("c", "", "optional path to the re-cut supplement export")
	outDir := flag.String("out", ".", "directory the report is written to")
	cfgPath := flag.String("config", "", "optional config file (yaml, toml or json)")
	logLevel := flag.String("log-level", "info", "debug, info, warn or error")
	demo := flag.Bool("demo", false, "generate sample exports into -out and build the report from them")
	flag.Parse()

	logger := newLogger(*logLevel)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Step 1: collect the uploads, generating them first in demo mode.
	if *demo {
		paths, err := writeDemo(cfg, *outDir, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "demo: %v\n", err)
			os.Exit(1)
		}
		*shiftA, *shiftB, *shiftC = paths[0], paths[1], paths[2]
		level.Info(logger).Log("msg", "demo inputs written", "dir", *outDir)
	}

	in, err := readInputs(*shiftA, *shiftB, *shiftC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read inputs: %v\n", err)
		os.Exit(1)
	}

	// Step 2: build the workbook.
	out, err := pipeline.Run(cfg, in, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build: %v\n", err)
		os.Exit(1)
	}

	// Step 3: save it.
	path := filepath.Join(*outDir, out.FileName)
	if err := os.WriteFile(path, out.Data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "saved", "path", path, "size", humanize.Bytes(uint64(len(out.Data))), "partial", out.Partial)
	fmt.Println("done:", path)
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "run", uuid.NewString())

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}

func readInputs(a, b, c string) (pipeline.Inputs, error) {
	var in pipeline.Inputs
	var err error

	if in.A, err = readUpload(a); err != nil {
		return in, fmt.Errorf("shift A: %w", err)
	}
	if in.B, err = readUpload(b); err != nil {
		return in, fmt.Errorf("shift B: %w", err)
	}
	if in.C, err = readUpload(c); err != nil {
		return in, fmt.Errorf("supplement: %w", err)
	}
	return in, nil
}

// readUpload returns nil for an empty path so the pipeline reports the
// missing file itself.
func readUpload(path string) (*pipeline.Upload, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &pipeline.Upload{Name: filepath.Base(path), Data: data}, nil
}

// writeDemo writes shift A as xlsx, shift B as cp874 csv and a supplement as
// xlsx, and returns their paths.
func writeDemo(cfg config.Config, dir string, now time.Time) ([3]string, error) {
	var paths [3]string
	if err := os.MkdirAll(dir, 0755); err != nil {
		return paths, err
	}

	rng := sample.NewRand(uint64(now.UnixNano()))
	machines := cfg.MachineOrder

	rowsA := sample.ShiftRows(machines, domain.ShiftA, now, rng)
	rowsA = append(rowsA, sample.ShiftRows([]string{merge.CutName(machines[0], 2)}, domain.ShiftA, now, rng)...)

	a, err := sample.XLSX([]string{"รายงานการทอ กะ A"}, sample.Header(domain.ShiftFields), rowsA)
	if err != nil {
		return paths, fmt.Errorf("shift A: %w", err)
	}

	b, err := sample.CSV(sample.Header(domain.ShiftFields), sample.ShiftRows(machines, domain.ShiftB, now, rng), "cp874")
	if err != nil {
		return paths, fmt.Errorf("shift B: %w", err)
	}

	c, err := sample.XLSX(nil, sample.Header(domain.SupplementFields), sample.SupplementRows(machines[:min(10, len(machines))], now, rng))
	if err != nil {
		return paths, fmt.Errorf("supplement: %w", err)
	}

	for i, f := range []struct {
		name string
		data []byte
	}{{"shift_a.xlsx", a}, {"shift_b.csv", b}, {"shift_c.xlsx", c}} {
		paths[i] = filepath.Join(dir, f.name)
		if err := os.WriteFile(paths[i], f.data, 0644); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
