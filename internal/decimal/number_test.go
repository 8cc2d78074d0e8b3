package decimal

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"zero", "0", "0", false},
		{"single digit", "7", "7", false},
		{"multi digit", "354224848179261915075", "354224848179261915075", false},
		{"empty", "", "", true},
		{"leading zero", "007", "", true},
		{"double zero", "00", "", true},
		{"sign", "-1", "", true},
		{"letter", "12a4", "", true},
		{"space", " 1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %s, want error", tt.in, got)
				}
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("Parse(%q) error %v should match ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got.String(), tt.want)
			}
		})
	}
}

func TestNumber_ZeroValue(t *testing.T) {
	t.Parallel()
	var n Number
	if n.String() != "0" {
		t.Errorf("zero value String() = %q, want \"0\"", n.String())
	}
	if !n.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if n.Len() != 1 {
		t.Errorf("zero value Len() = %d, want 1", n.Len())
	}
	if !n.Equal(Zero()) {
		t.Error("zero value should equal Zero()")
	}
}

func TestNumber_Cmp(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want int
	}{
		{"0", "0", 0},
		{"0", "1", -1},
		{"10", "9", 1},
		{"99", "100", -1},
		{"12345", "12354", -1},
		{"54321", "54321", 0},
	}
	for _, tt := range tests {
		if got := MustParse(tt.a).Cmp(MustParse(tt.b)); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should panic on malformed input")
		}
	}()
	MustParse("x")
}
