package simdyaml

import (
	"errors"
	"strings"
	"testing"
)

func TestSyntaxErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	se := &SyntaxError{Kind: ErrInvalidEscapeSequence, Mark: Mark{Line: 2, Column: 5}, Err: inner}

	if !errors.Is(se, inner) {
		t.Fatalf("errors.Is(se, inner) = false, want true")
	}
	if got := se.Unwrap(); got != inner {
		t.Fatalf("Unwrap() = %v, want %v", got, inner)
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	se := &SyntaxError{Kind: ErrTabIndentation, Mark: Mark{Line: 3, Column: 1}}
	msg := se.Error()
	for _, want := range []string{"tab used as block indentation", "line 3", "column 1"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestErrorKindStringCoversTaxonomy(t *testing.T) {
	kinds := []ErrorKind{
		ErrUnexpectedDocumentEnd, ErrBadIndentation, ErrTabIndentation,
		ErrUnterminatedQuotedScalar, ErrMissingWhitespaceBeforeComment,
		ErrDuplicateTagProperty, ErrUnknownDirective, ErrDuplicateMappingKey,
		ErrInvalidUTF8,
	}
	for _, k := range kinds {
		if k.String() == "unknown error" {
			t.Errorf("ErrorKind(%d).String() returned the unknown-error fallback", k)
		}
	}
}
