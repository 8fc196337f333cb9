// Package probe checks that a target directory is writable before a long
// synthesis run commits to writing its result there, per the generate
// subcommand's pre-write writeability check.
package probe

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxAttempts bounds the retry loop in Writable: parallel invocations of
// generate racing to probe the same directory collide on probe names only
// by UUID coincidence, so a handful of retries tolerates that without
// masking a genuinely unwritable directory.
const MaxAttempts = 8

// Writable creates and immediately removes a uniquely-named probe file
// inside dir, retrying with a fresh name up to MaxAttempts times. It
// returns nil once a probe succeeds, or the last error encountered if
// every attempt fails.
func Writable(dir string) error {
	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		probePath := filepath.Join(dir, ".bicycle-probe-"+uuid.NewString())
		f, err := os.OpenFile(probePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err != nil {
			lastErr = err
			continue
		}
		closeErr := f.Close()
		removeErr := os.Remove(probePath)
		if closeErr != nil {
			lastErr = closeErr
			continue
		}
		if removeErr != nil {
			lastErr = removeErr
			continue
		}
		return nil
	}
	return errors.Wrapf(lastErr, "probe: %s not writable after %d attempts", dir, MaxAttempts)
}
