// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

// Status is the outcome of one phase as shown in the report.
type Status string

const (
	StatusSkipped Status = "SKIPPED"
	StatusFailed  Status = "FAILED"
	StatusOK      Status = "OK"
)

// Classify returns the status of phase. Skipping wins over a recorded error.
func Classify(phase string, skipped SkipSet, errs ErrorMap) Status {
	if skipped.Contains(phase) {
		return StatusSkipped
	}
	if errs.Has(phase) {
		return StatusFailed
	}
	return StatusOK
}
