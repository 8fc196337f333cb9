// Command bicycle_numerics reads a stream of PBC operations from stdin,
// compiles and optimizes each one, and estimates the physical resources
// (wall-clock cycles, accumulated logical error) the resulting Bicycle
// ISA stream would consume under a named noise/timing model.
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"bicycle/internal/arch"
	"bicycle/internal/compile"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/logging"
	"bicycle/internal/nativemeas"
	"bicycle/internal/numerics"
	"bicycle/internal/optimize"
	"bicycle/internal/program"
	"bicycle/internal/synthesis"

	"github.com/pkg/errors"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		logging.Fatalf("%v", err)
	}
}

func run(args []string) error {
	if len(args) < 2 {
		return errors.New("bicycle_numerics: usage: bicycle_numerics <qubits> <model> [-e <max_error>] [-i <max_iter>] [-chart <path>]")
	}
	qubits, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "bicycle_numerics: parsing qubits %q", args[0])
	}
	modelName := args[1]
	model, err := numerics.ByName(modelName)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("bicycle_numerics", flag.ContinueOnError)
	maxErrorStr := fs.String("e", "0.3333333333333333", "maximum cumulative physical error before the run stops")
	maxIter := fs.Int64("i", 1_000_000, "maximum number of PBC operations to process")
	chartPath := fs.String("chart", "", "optional path to render an HTML resource chart")
	if err := fs.Parse(args[2:]); err != nil {
		return errors.Wrap(err, "bicycle_numerics: parsing flags")
	}

	maxError, err := fixedpoint.ErrorFromString(*maxErrorStr)
	if err != nil {
		return errors.Wrapf(err, "bicycle_numerics: parsing max error %q", *maxErrorStr)
	}

	architecture := arch.ForQubits(qubits)
	code := codeForModel(modelName)
	logging.Infof("building %s measurement table for %d-qubit (%d block) architecture", code, qubits, architecture.DataBlocks)
	table, err := synthesis.BuildCompleteMeasurementTable(code)
	if err != nil {
		return errors.Wrap(err, "bicycle_numerics: building table")
	}
	accuracy := fixedpoint.MustErrorFromString("1e-9")

	est := numerics.NewEstimator(model, architecture)
	var rows []numerics.OutputRow

	processed := int64(0)
	err = program.ReadPbcOperations(os.Stdin, func(op program.PbcOperation) error {
		if processed >= *maxIter {
			return errStop
		}
		ops, err := compile.Compile(op, architecture, table, accuracy)
		if err != nil {
			return err
		}
		ops = optimize.RemoveDuplicateMeasurements(ops)
		ops = optimize.RemoveTrivialAutomorphisms(ops)
		if err := est.Step(ops); err != nil {
			return err
		}
		processed++
		rows = append(rows, est.Row())
		if est.TotalError.Cmp(maxError) > 0 {
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return errors.Wrap(err, "bicycle_numerics: processing input stream")
	}

	if err := numerics.WriteCSV(os.Stdout, rows); err != nil {
		return errors.Wrap(err, "bicycle_numerics: writing csv")
	}

	if *chartPath != "" {
		f, err := os.Create(*chartPath)
		if err != nil {
			return errors.Wrapf(err, "bicycle_numerics: creating %s", *chartPath)
		}
		defer f.Close()
		if err := numerics.RenderBarChart(f, rows); err != nil {
			return errors.Wrap(err, "bicycle_numerics: rendering chart")
		}
	}
	return nil
}

// errStop is a sentinel returned by the ReadPbcOperations callback to end
// the stream early once a termination budget (max_iter or max_error) is
// hit, without treating the remainder of stdin as malformed input.
var errStop = errors.New("bicycle_numerics: termination budget reached")

// codeForModel infers which bivariate-bicycle code a named noise/timing
// model was built for from its name, since bicycle_numerics takes no
// separate code argument; every Model name other than the synthetic
// fake_slow profile is prefixed with its code's String() form.
func codeForModel(name string) nativemeas.Code {
	if strings.HasPrefix(name, "two_gross") {
		return nativemeas.TwoGross
	}
	return nativemeas.Gross
}
