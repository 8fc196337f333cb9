package smallangle

import (
	"os"
	"os/exec"
	"strings"
	"sync"

	"bicycle/internal/fixedpoint"
	"bicycle/internal/pauli"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// tAngle is pi/4, the single rotation a direct T-gate injection realizes
// without synthesis.
var tAngle = fixedpoint.MustAngleFromString("0.78539816339744830961566084582")

// maxAccuracy is the largest epsilon synthesize_angle accepts; gridsynth's
// runtime grows rapidly past this and callers should instead split the
// rotation into smaller steps.
var maxAccuracy = fixedpoint.MustErrorFromString("0.1")

type synthesisResult struct {
	rotations []SingleRotation
	cliffords []CliffordGate
}

var (
	cacheMu sync.Mutex
	cache   = map[string]synthesisResult{}
	group   singleflight.Group
)

func cacheKey(theta fixedpoint.Angle, accuracy fixedpoint.Error) string {
	return theta.String() + "|" + accuracy.String()
}

// ResetCacheForTest clears the process-wide synthesis cache. Intended for
// test isolation only.
func ResetCacheForTest() {
	cacheMu.Lock()
	cache = map[string]synthesisResult{}
	cacheMu.Unlock()
}

// gridsynthCommand returns the external synthesizer binary name, honoring
// the BICYCLE_GRIDSYNTH override (useful for pointing at a specific
// build, or a test double, without touching PATH).
func gridsynthCommand() string {
	if cmd := os.Getenv("BICYCLE_GRIDSYNTH"); cmd != "" {
		return cmd
	}
	return "gridsynth"
}

// runGridsynth shells out to the Matsumoto-Amano synthesizer, requesting
// a normal-form gate string for a Z-rotation by theta within the given
// accuracy.
func runGridsynth(theta fixedpoint.Angle, accuracy fixedpoint.Error) (string, error) {
	cmd := exec.Command(gridsynthCommand(), "-p", "--epsilon", accuracy.String(), "--", theta.String())
	out, err := cmd.Output()
	if err != nil {
		return "", errors.Wrap(err, "smallangle: running gridsynth")
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// SynthesizeAngle decomposes a Z-axis rotation by theta, accurate to
// accuracy, into a sequence of T-gate rotations and a trailing Clifford
// correction. Results are memoized process-wide, since gridsynth is slow
// and the same (theta, accuracy) pair recurs heavily across a typical
// compiled program.
func SynthesizeAngle(theta fixedpoint.Angle, accuracy fixedpoint.Error) ([]SingleRotation, []CliffordGate, error) {
	if accuracy.Cmp(maxAccuracy) > 0 {
		return nil, nil, errors.New("smallangle: accuracy must not exceed 0.1")
	}
	if theta.Abs().Equal(tAngle) {
		return []SingleRotation{{Basis: pauli.Z, Dagger: theta.IsNegative()}}, nil, nil
	}

	key := cacheKey(theta, accuracy)

	cacheMu.Lock()
	if r, ok := cache[key]; ok {
		cacheMu.Unlock()
		return r.rotations, r.cliffords, nil
	}
	cacheMu.Unlock()

	v, err, _ := group.Do(key, func() (interface{}, error) {
		cacheMu.Lock()
		if r, ok := cache[key]; ok {
			cacheMu.Unlock()
			return r, nil
		}
		cacheMu.Unlock()

		gates, err := runGridsynth(theta, accuracy)
		if err != nil {
			return nil, err
		}
		rotations, cliffords, err := compileRots(gates)
		if err != nil {
			return nil, errors.Wrapf(err, "smallangle: parsing gridsynth output %q", gates)
		}
		r := synthesisResult{rotations: rotations, cliffords: cliffords}

		cacheMu.Lock()
		cache[key] = r
		cacheMu.Unlock()
		return r, nil
	})
	if err != nil {
		return nil, nil, err
	}
	r := v.(synthesisResult)
	return r.rotations, r.cliffords, nil
}

// SynthesizeAngleX decomposes an X-axis rotation by theta, by
// synthesizing the equivalent Z-axis rotation and conjugating the whole
// sequence with Hadamards.
func SynthesizeAngleX(theta fixedpoint.Angle, accuracy fixedpoint.Error) ([]SingleRotation, []CliffordGate, error) {
	rotations, cliffords, err := SynthesizeAngle(theta, accuracy)
	if err != nil {
		return nil, nil, err
	}
	switched := make([]SingleRotation, len(rotations))
	for i, r := range rotations {
		switched[i] = r.SwitchBasis()
	}
	out := make([]CliffordGate, 0, len(cliffords)+2)
	out = append(out, CliffordH)
	out = append(out, cliffords...)
	out = append(out, CliffordH)
	return switched, out, nil
}
