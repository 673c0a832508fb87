// Package diag defines the diagnostic model shared by the fixcheck phases.
//
// A Diagnostic records one finding: a missing fix, a fix found the wrong
// number of times, or malformed CHECK-FIXES markup. Each carries a Severity,
// a stable Code (FIX1002, ANN2001, ...), a message and a primary source.Span
// that points at the annotation line the finding is about. Notes add
// secondary locations, for example every block that contributed to a
// duplicated fragment.
//
// Producers emit through a Reporter (usually a BagReporter) so that storage
// and rendering stay decoupled. Package report renders Bags for humans;
// FormatShortDiagnostics renders them into stable single-line form for
// golden files.
//
// Package diag does no IO and no formatting beyond the short form.
package diag
