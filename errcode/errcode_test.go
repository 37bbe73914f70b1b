package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeIsError(t *testing.T) {
	var err error = Unsupported
	if err.Error() != "unsupported" {
		t.Fatalf("Error(): got %q", err.Error())
	}
	if !errors.Is(err, Unsupported) {
		t.Fatal("errors.Is should match the code itself")
	}
}

func TestOf(t *testing.T) {
	if Of(nil) != OK {
		t.Fatal("Of(nil) should be OK")
	}
	if Of(InvalidTrigger) != InvalidTrigger {
		t.Fatal("Of should pass a bare Code through")
	}
	wrapped := &E{C: Unavailable, Op: "enable", Err: fmt.Errorf("no free irq")}
	if Of(wrapped) != Unavailable {
		t.Fatal("Of should extract the code from E")
	}
	if Of(fmt.Errorf("opaque")) != Error {
		t.Fatal("Of should default to Error")
	}
}

func TestEUnwrap(t *testing.T) {
	cause := fmt.Errorf("ioctl failed")
	e := &E{C: LineBusy, Op: "request", Msg: "line 4 already requested", Err: cause}
	if e.Error() != "line_busy: line 4 already requested" {
		t.Fatalf("Error(): got %q", e.Error())
	}
	if !errors.Is(e, cause) {
		t.Fatal("E should unwrap to its cause")
	}
}
