package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/rag-bench/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("suite has no cases")

	if err.Error() != "suite has no cases" {
		t.Errorf("expected 'suite has no cases', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("yaml: line 3")
	err := apperr.NewValidationWrap("invalid suite file", inner)

	if err.Error() != "invalid suite file: yaml: line 3" {
		t.Errorf("expected 'invalid suite file: yaml: line 3', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("threshold out of range")

	wrapped := fmt.Errorf("load spec: %w", original)
	doubleWrapped := fmt.Errorf("run eval: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "threshold out of range" {
		t.Errorf("expected 'threshold out of range', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("connection refused")
	wrapped := fmt.Errorf("target error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}
