// Package rpi implements digitalio backends against the Raspberry Pi's
// memory-mapped GPIO registers (via warthog618/gpio). Unlike the
// character device driver, polarity mapping is done in this package:
// an active-low line inverts levels on every read and write.
//
// The register mapping is opened on the first enabled line and closed
// when the last one is disabled. Edge watches are polled by the gpio
// package; level triggers are rejected. Watching an output line is not
// possible, so the output+interrupt composites cannot be built here.
//
// On Linux the package registers itself with the line registry under
// the driver name "rpi". The chip name in the build input is ignored;
// there is only the SoC.
package rpi
