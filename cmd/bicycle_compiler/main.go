// Command bicycle_compiler reads a stream of PBC operations from stdin
// and writes the compiled Bicycle ISA instruction stream to stdout.
package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"bicycle/internal/arch"
	"bicycle/internal/compile"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/logging"
	"bicycle/internal/nativemeas"
	"bicycle/internal/optimize"
	"bicycle/internal/probe"
	"bicycle/internal/program"
	"bicycle/internal/synthesis"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const qubitsPerBlock = 11

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.Fatalf("%v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("bicycle_compiler: usage: bicycle_compiler <code:gross|two-gross> [--measurement-table <path>] [-a <accuracy>] [generate <out-path>]")
	}
	code, err := nativemeas.ParseCode(args[0])
	if err != nil {
		return err
	}
	args = args[1:]

	fs := flag.NewFlagSet("bicycle_compiler", flag.ContinueOnError)
	tablePath := fs.String("measurement-table", "", "path to a previously generated measurement table")
	accuracyStr := fs.String("a", "1e-9", "small-angle synthesis accuracy")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(err, "bicycle_compiler: parsing flags")
	}

	rest := fs.Args()
	if len(rest) >= 1 && rest[0] == "generate" {
		if len(rest) < 2 {
			return errors.New("bicycle_compiler: generate requires an output path")
		}
		return generateTable(code, rest[1])
	}

	table, err := loadOrBuildTable(code, *tablePath)
	if err != nil {
		return err
	}

	accuracy, err := fixedpoint.ErrorFromString(*accuracyStr)
	if err != nil {
		return errors.Wrapf(err, "bicycle_compiler: parsing accuracy %q", *accuracyStr)
	}

	return compileStream(os.Stdin, os.Stdout, table, accuracy)
}

// generateTable builds the full measurement table for code and writes it
// to outPath, probing the destination directory's writeability first.
func generateTable(code nativemeas.Code, outPath string) error {
	dir := filepath.Dir(outPath)
	if err := probe.Writable(dir); err != nil {
		return errors.Wrap(err, "bicycle_compiler: generate target not writable")
	}

	logging.Infof("building measurement table for %s", code)
	table, err := synthesis.BuildCompleteMeasurementTable(code)
	if err != nil {
		return errors.Wrap(err, "bicycle_compiler: building table")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "bicycle_compiler: creating %s", outPath)
	}
	defer f.Close()

	written, err := table.WriteTo(f)
	if err != nil {
		return errors.Wrapf(err, "bicycle_compiler: writing %s", outPath)
	}
	logging.Infof("wrote %s to %s", humanize.Bytes(uint64(written)), outPath)
	return nil
}

func loadOrBuildTable(code nativemeas.Code, path string) (*synthesis.CompleteMeasurementTable, error) {
	if path == "" {
		logging.Infof("no --measurement-table given, building %s table in memory", code)
		return synthesis.BuildCompleteMeasurementTable(code)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bicycle_compiler: opening %s", path)
	}
	defer f.Close()
	table, err := synthesis.ReadMeasurementTable(f)
	if err != nil {
		return nil, errors.Wrapf(err, "bicycle_compiler: reading %s", path)
	}
	if table.Code != code {
		return nil, errors.Errorf("bicycle_compiler: %s was built for %s, not %s", path, table.Code, code)
	}
	return table, nil
}

func blocksForBasisLength(n int) int {
	if n == 0 {
		return 1
	}
	return (n + qubitsPerBlock - 1) / qubitsPerBlock
}

// compileStream reads every PbcOperation from r, compiles each against an
// architecture sized to its own basis, runs the stream optimizer across
// the whole program (duplicate-measurement and trivial-automorphism
// elision), and writes one JSON line per operation to w.
func compileStream(r io.Reader, w io.Writer, table *synthesis.CompleteMeasurementTable, accuracy fixedpoint.Error) error {
	var chunks [][]program.Operation
	err := program.ReadPbcOperations(r, func(op program.PbcOperation) error {
		architecture := arch.PathArchitecture{DataBlocks: blocksForBasisLength(len(op.Basis()))}
		ops, err := compile.Compile(op, architecture, table, accuracy)
		if err != nil {
			return err
		}
		chunks = append(chunks, ops)
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "bicycle_compiler: compiling input stream")
	}

	chunks = optimize.RemoveDuplicateMeasurementsChunked(chunks)
	for _, chunk := range chunks {
		chunk = optimize.RemoveTrivialAutomorphisms(chunk)
		if err := program.WriteOperations(w, program.Operations(chunk)); err != nil {
			if errors.Is(err, syscall.EPIPE) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return errors.Wrap(err, "bicycle_compiler: writing output")
		}
	}
	return nil
}
