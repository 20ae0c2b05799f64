package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("boom"), want: CodeInternal},
		{name: "app error", err: New(CodeNotFound, "missing"), want: CodeNotFound},
		{name: "wrapped app error", err: fmt.Errorf("outer: %w", New(CodeConstraint, "dup")), want: CodeConstraint},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetCode(tc.err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(CodeNotFound, "employee 4 not found", sql.ErrNoRows)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatal("expected wrapped cause to be reachable")
	}
	if err.Error() != "employee 4 not found" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !Is(err, CodeNotFound) {
		t.Fatal("expected not_found code")
	}
	if Is(nil, CodeNotFound) {
		t.Fatal("nil error must not match any code")
	}
}
