package tiler

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestIsRecoverable(t *testing.T) {
	recoverable := []error{
		&SourceReadError{Path: "a.osgb", Err: os.ErrNotExist},
		&EmptyGeometryError{Path: "b.osgb"},
		fmt.Errorf("tile 3: %w", &EmptyGeometryError{Path: "c.osgb"}),
	}
	for _, err := range recoverable {
		if !IsRecoverable(err) {
			t.Fatalf("%v should be recoverable", err)
		}
	}

	fatal := []error{
		&WriteError{Path: "out/a.b3dm", Err: os.ErrPermission},
		&DirectoryError{Path: "out/a", Err: os.ErrPermission},
		errors.New("boom"),
	}
	for _, err := range fatal {
		if IsRecoverable(err) {
			t.Fatalf("%v should not be recoverable", err)
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	err := &WriteError{Path: "out/a.b3dm", Err: os.ErrPermission}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatal("write error should unwrap to its cause")
	}
	if err.Error() != "write out/a.b3dm: "+os.ErrPermission.Error() {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestRefineModeString(t *testing.T) {
	if RefineModeReplace.String() != "REPLACE" {
		t.Fatalf("refine=%s", RefineModeReplace.String())
	}
}
