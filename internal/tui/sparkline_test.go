package tui

import (
	"slices"
	"testing"
	"unicode/utf8"
)

func TestRingBuffer(t *testing.T) {
	rb := NewRingBuffer(3)
	if rb.Last() != 0 || rb.Max() != 0 || rb.Slice() != nil {
		t.Fatal("empty buffer should report zeros and a nil slice")
	}

	for _, v := range []float64{1, 5, 3, 4} {
		rb.Push(v)
	}
	if got, want := rb.Slice(), []float64{5, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("Slice() = %v, want %v", got, want)
	}
	if rb.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rb.Len())
	}
	if rb.Last() != 4 {
		t.Errorf("Last() = %v, want 4", rb.Last())
	}
	if rb.Max() != 5 {
		t.Errorf("Max() = %v, want 5", rb.Max())
	}

	rb.Reset()
	if rb.Len() != 0 || rb.Slice() != nil {
		t.Error("Reset should drop every sample")
	}
}

func TestNewRingBuffer_MinimumCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	rb.Push(7)
	rb.Push(8)
	if got := rb.Slice(); !slices.Equal(got, []float64{8}) {
		t.Errorf("Slice() = %v, want [8]", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		ceiling float64
		want    string
	}{
		{"empty", nil, 100, ""},
		{"extremes", []float64{0, 100}, 100, "▁█"},
		{"scaled to ceiling", []float64{0, 50, 200}, 200, "▁▃█"},
		{"clamped above", []float64{150}, 100, "█"},
		{"negative", []float64{-5}, 100, "▁"},
		{"zero ceiling", []float64{3, 9}, 0, "▁▁"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values, tt.ceiling); got != tt.want {
				t.Errorf("RenderSparkline(%v, %v) = %q, want %q", tt.values, tt.ceiling, got, tt.want)
			}
		})
	}
}

func TestRenderBrailleChart(t *testing.T) {
	if RenderBrailleChart([]float64{1}, 1, 0, 2) != nil {
		t.Error("zero width should render nothing")
	}

	lines := RenderBrailleChart([]float64{0, 10}, 10, 3, 2)
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if utf8.RuneCountInString(l) != 3 {
			t.Errorf("row %q should be 3 cells wide", l)
		}
	}
	// Values are right-aligned: the peak lands in the top row of the last
	// cell, the zero in the bottom row.
	top := []rune(lines[0])
	bottom := []rune(lines[1])
	if top[2]&brailleDots[1][0] == 0 {
		t.Errorf("peak dot missing from top-right cell %U", top[2])
	}
	if bottom[2]&brailleDots[0][3] == 0 {
		t.Errorf("zero dot missing from bottom-right cell %U", bottom[2])
	}
	if top[0] != 0x2800 || bottom[0] != 0x2800 {
		t.Error("leading cells should be blank")
	}
}

func TestElide(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"12345", 10, "12345"},
		{"1234567890", 5, "12…90"},
		{"1234567890", 6, "12…890"},
		{"1234567890", 3, "123"},
		{"1234567890", -1, ""},
	}
	for _, tt := range tests {
		if got := elide(tt.s, tt.n); got != tt.want {
			t.Errorf("elide(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}
