// Package diag provides phase-prefixed advisory diagnostic codes for the
// layers that sit above the inference core. The core itself never
// rejects a program (spec §7): these records are collected for callers
// that want to log or surface them, mirroring ailang's internal/errors
// code taxonomy (PAR###, MOD###, ...) adapted to this module's phases.
package diag

// Code is one phase-prefixed diagnostic identifier.
type Code string

const (
	// CHK001 indicates type_check could not obtain def/use info for a file.
	CHK001 Code = "CHK001"
	// SIG001 indicates the runtime-signature analyzer had no entry for a callable.
	SIG001 Code = "SIG001"
	// SIG002 indicates a literal argument failed catalog scalar-domain validation
	// (e.g. a text-lang/text-region argument that is not a valid BCP-47 tag).
	SIG002 Code = "SIG002"
	// SIM001 is informational: a simplify call collapsed a recursive variable
	// cycle to Any for lack of other evidence.
	SIM001 Code = "SIM001"
	// CST001 indicates Constrain received a combination of type variants it
	// does not handle; posting was a no-op (spec §4.3.2, "logged").
	CST001 Code = "CST001"
)

// Record is one advisory diagnostic emitted by the core's edges.
type Record struct {
	Code    Code
	Message string
}

// Sink collects Records. The core never requires one; callers that want
// visibility into no-op constraints or missing collaborator data can
// pass a Sink into Checker.
type Sink interface {
	Emit(Record)
}

// Collector is a simple in-memory Sink.
type Collector struct {
	Records []Record
}

func (c *Collector) Emit(r Record) { c.Records = append(c.Records, r) }
