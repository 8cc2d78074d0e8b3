package tui

// sparklineChars are the eight block heights, lowest first.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer of samples.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer holding at most capacity samples.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]float64, max(capacity, 1))}
}

// Push adds a sample, overwriting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	r.count = min(r.count+1, len(r.data))
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.count }

// Last returns the most recent sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Max returns the largest stored sample, or 0 when empty.
func (r *RingBuffer) Max() float64 {
	var m float64
	for _, v := range r.Slice() {
		m = max(m, v)
	}
	return m
}

// Slice returns the samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range out {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Reset drops every sample.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// level maps v in [0, ceiling] onto 0..steps-1. A non-positive ceiling maps
// everything to 0.
func level(v, ceiling float64, steps int) int {
	if ceiling <= 0 || v <= 0 {
		return 0
	}
	return min(int(v/ceiling*float64(steps-1)+0.5), steps-1)
}

// RenderSparkline draws values scaled against ceiling as one row of blocks.
func RenderSparkline(values []float64, ceiling float64) string {
	runes := make([]rune, len(values))
	for i, v := range values {
		runes[i] = sparklineChars[level(v, ceiling, len(sparklineChars))]
	}
	return string(runes)
}

// brailleDots[col][row] is the dot bit of a braille cell; cells are two dots
// wide and four tall.
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// RenderBrailleChart plots values scaled against ceiling on a grid of width
// by rows braille cells, one dot column per value, newest on the right.
func RenderBrailleChart(values []float64, ceiling float64, width, rows int) []string {
	if width <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, width)
		for c := range grid[r] {
			grid[r][c] = 0x2800
		}
	}

	dotRows, dotCols := rows*4, width*2
	if len(values) > dotCols {
		values = values[len(values)-dotCols:]
	}
	offset := dotCols - len(values)
	for i, v := range values {
		col := offset + i
		row := dotRows - 1 - level(v, ceiling, dotRows)
		grid[row/4][col/2] |= brailleDots[col%2][row%4]
	}

	lines := make([]string, rows)
	for r := range grid {
		lines[r] = string(grid[r])
	}
	return lines
}
