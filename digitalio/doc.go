// Package digitalio models a single digital GPIO line as a set of
// capability interfaces: every line can be enabled and disabled, and a
// concrete line additionally provides input (state readback), output
// (state assignment), interrupt (edge/level callbacks), or any
// combination of the three.
//
// The capability a caller needs is expressed in the type it holds. A
// function that only toggles an LED takes an OutputLine; handing it a
// pure input line fails to compile. Generic code that receives the base
// Line type can branch on the Provides* queries and narrow with the As*
// helpers.
//
// Concrete drivers do not implement the public interfaces directly.
// They implement the small *Backend hook interfaces (DoEnable,
// DoGetState, ...) and wrap them with the New*Line constructors, which
// own the bookkeeping the contract requires: interrupt registration
// lifecycle, idempotent arming, and argument validation. Everything a
// driver returns from a Do hook is passed through to the caller
// verbatim; the wrappers never retry and never log.
package digitalio
