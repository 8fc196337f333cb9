package isa

import "github.com/pkg/errors"

var (
	errNotIdentityBasis     = errors.New("isa: TGate basis must not be identity")
	errParallelMeasureBasis = errors.New("isa: ParallelMeasure basis must be X or Z")
)
