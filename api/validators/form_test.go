package validators

import (
	"testing"

	pkgerrors "github.com/rendypratama/invoicehub-backend/pkg/errors"
)

func TestRequireFormString(t *testing.T) {
	if _, err := RequireFormString("name", "   "); err == nil {
		t.Fatal("expected blank value to be rejected")
	}
	got, err := RequireFormString("name", "  Widget ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Widget" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestParseFormInt(t *testing.T) {
	if _, err := ParseFormInt("stock", "ten"); err == nil {
		t.Fatal("expected non-numeric stock to be rejected")
	}
	if _, err := ParseFormInt("stock", "-1"); err == nil {
		t.Fatal("expected negative stock to be rejected")
	}
	got, err := ParseFormInt("stock", " 10 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestParseFormPriceCents(t *testing.T) {
	cases := map[string]int{
		"2.50":  250,
		"0":     0,
		"19.99": 1999,
		"3":     300,
	}
	for input, want := range cases {
		got, err := ParseFormPriceCents("price", input)
		if err != nil {
			t.Fatalf("price %q: unexpected error %v", input, err)
		}
		if got != want {
			t.Fatalf("price %q: expected %d cents, got %d", input, want, got)
		}
	}

	for _, bad := range []string{"abc", "-0.01", "NaN", "+Inf"} {
		_, err := ParseFormPriceCents("price", bad)
		if err == nil {
			t.Fatalf("expected price %q to be rejected", bad)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %q, got %v", bad, err)
		}
	}
}
