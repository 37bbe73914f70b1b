// Package gpiocdev implements digitalio backends on top of the Linux
// GPIO character device (via warthog618/gpiod). The kernel line is
// requested on Enable and released on Disable; edge events are
// requested with both edges and filtered in software against the
// registered trigger, so re-registration never needs a kernel
// round trip.
//
// Polarity is mapped by the kernel: lines opened with ActiveLow report
// and accept logical states directly. Level triggers are not supported
// by the character device and are rejected at registration. Edge
// detection on output lines is likewise unsupported, so the
// output+interrupt composites cannot be built with this driver.
//
// On Linux the package registers itself with the line registry under
// the driver name "gpiocdev". On other platforms it is an empty shell.
package gpiocdev
