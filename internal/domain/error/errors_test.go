package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestCode_Kind(t *testing.T) {
	tests := []struct {
		code Code
		want Kind
	}{
		{ErrCodeInvalidTransactionAmount, KindValidation},
		{ErrCodeBillNotFound, KindNotFound},
		{ErrCodeUnauthorized, KindUnauthorized},
		{ErrCodeQuotaExceeded, KindLimitExceeded},
		{ErrCodeBillingProviderFailure, KindExternalService},
		{Code("XXX-990001"), KindUnknown},
		{Code("garbage"), KindUnknown},
		{Code("XXX-1"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_ErrorAndUnwrap(t *testing.T) {
	err := NewBillError(ErrCodeBillAlreadyPaid, "bill already paid", ErrBillAlreadyPaid)

	if err.Error() != "bill already paid: bill already paid" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrBillAlreadyPaid) {
		t.Error("expected errors.Is to match the sentinel")
	}

	bare := New(ErrCodeInvalidCardDay, "closing day must be between 1 and 31", nil)
	if bare.Error() != "closing day must be between 1 and 31" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}

func TestKindOf(t *testing.T) {
	t.Run("wrapped domain error", func(t *testing.T) {
		err := fmt.Errorf("failed to pay bill: %w", NewBillError(ErrCodeBillNotFound, "bill not found", ErrBillNotFound))
		if got := KindOf(err); got != KindNotFound {
			t.Errorf("KindOf() = %q, want %q", got, KindNotFound)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if got := KindOf(errors.New("boom")); got != KindUnknown {
			t.Errorf("KindOf() = %q, want %q", got, KindUnknown)
		}
	})

	t.Run("unauthorized helper", func(t *testing.T) {
		if got := KindOf(NewUnauthorizedError()); got != KindUnauthorized {
			t.Errorf("KindOf() = %q, want %q", got, KindUnauthorized)
		}
	})
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewCategoryError(ErrCodeCategoryNameExists, "exists", ErrCategoryNameExists))

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("expected domain error")
	}
	if got.Code != ErrCodeCategoryNameExists {
		t.Errorf("Code = %q, want %q", got.Code, ErrCodeCategoryNameExists)
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("expected no domain error for plain error")
	}
}
