package ledger

import "time"

// DiagnosticKind classifies the advisory problems the engine can surface.
type DiagnosticKind string

const (
	// DiagInsufficientStock a guarded subtraction would have driven a balance
	// below zero; the operation was skipped.
	DiagInsufficientStock DiagnosticKind = "insufficient-stock"
	// DiagOverConsumption a rice-production deduction exceeded the outturn's
	// remaining bags; the balance was floored at zero.
	DiagOverConsumption DiagnosticKind = "over-consumption"
	// DiagUnmatchedLoading a loading dispatch found no stock entry to subtract
	// from; the subtraction was dropped.
	DiagUnmatchedLoading DiagnosticKind = "unmatched-loading"
	// DiagMissingDate a record without a usable date could not be placed in
	// the ledger and was excluded.
	DiagMissingDate DiagnosticKind = "missing-date"
	// DiagContinuityMismatch closing stock of day N differs from opening
	// stock of day N+1 (beyond clearing exclusions).
	DiagContinuityMismatch DiagnosticKind = "continuity-mismatch"
	// DiagBalanceMismatch closing total deviates from opening + inflows -
	// outflows beyond tolerance.
	DiagBalanceMismatch DiagnosticKind = "balance-mismatch"
)

// Diagnostic is an advisory finding. The engine never aborts on these; it
// returns a best-effort result plus the list of diagnostics for manual
// reconciliation.
type Diagnostic struct {
	Kind     DiagnosticKind
	Date     time.Time
	RecordID string
	Message  string
}
