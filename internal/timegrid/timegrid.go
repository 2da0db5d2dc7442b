// Package timegrid implements absolute-minute <-> block-index arithmetic on
// the fixed 7-day, 15-minute weekly grid used throughout wardshift.
package timegrid

// Fixed weekly grid constants (spec.md §3).
const (
	MinutesPerWeek = 7 * 24 * 60 // 10080
	BlockMinutes   = 15
	BlocksPerWeek  = MinutesPerWeek / BlockMinutes // 672
	BlocksPerDay   = 24 * 60 / BlockMinutes        // 96
)

// TimeOfDay is an hour/minute pair, always 0 <= Hour <= 24, 0 <= Minute < 60.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the time of day expressed as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// MinuteToBlock converts an absolute weekly minute to its containing block.
func MinuteToBlock(m int) int {
	return m / BlockMinutes
}

// BlockToMinute converts a block index back to its starting weekly minute.
func BlockToMinute(b int) int {
	return b * BlockMinutes
}

// BlockToTimeOfDay returns the (hour, minute) of block b's time of day,
// ignoring which day of the week b falls on.
func BlockToTimeOfDay(b int) TimeOfDay {
	minuteOfDay := BlockToMinute(mod(b, BlocksPerDay))
	return TimeOfDay{Hour: minuteOfDay / 60, Minute: minuteOfDay % 60}
}

// DayOffsetMinutes returns the absolute weekly minute at which day dayIndex
// (0 = Monday .. 6 = Sunday) begins.
func DayOffsetMinutes(dayIndex int) int {
	return dayIndex * 24 * 60
}

// mod is a non-negative modulo; Go's % can return negative results for
// negative operands, which never arise here but we keep the helper honest.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}

// Bitmap is a length-BlocksPerWeek 0/1 vector addressed by block index.
type Bitmap [BlocksPerWeek]bool

// SetRange marks bit 1 for every block in the half-open minute interval
// [startMin, endMin). Per spec.md §4.1, the interval is lowered to blocks by
// treating it as closed on [startMin, endMin-1]; wrap semantics follow the
// half-open rule of §9's Open Question: endMin == MinutesPerWeek is the last
// block of Sunday, not a wrap.
func (b *Bitmap) SetRange(startMin, endMin int) {
	rangeBlocks(startMin, endMin, func(block int) {
		b[block] = true
	})
}

// ClearRange mirrors SetRange but clears bits instead of setting them.
func (b *Bitmap) ClearRange(startMin, endMin int) {
	rangeBlocks(startMin, endMin, func(block int) {
		b[block] = false
	})
}

// rangeBlocks calls fn for every block touched by the half-open minute
// interval [startMin, endMin), splitting the interval at the week boundary
// when it wraps. On the model side this is the only wrap handling besides
// the latestBlock' extension in internal/tasks (spec.md §9 "Wrap
// arithmetic"); internal/validate wraps its own block ranges independently.
func rangeBlocks(startMin, endMin int, fn func(block int)) {
	if endMin <= MinutesPerWeek {
		forEachBlock(startMin, endMin, fn)
		return
	}
	forEachBlock(startMin, MinutesPerWeek, fn)
	forEachBlock(0, endMin-MinutesPerWeek, fn)
}

// forEachBlock calls fn for each block index touched by the contiguous
// half-open minute range [startMin, endMin), endMin assumed <= MinutesPerWeek.
// The end minute is reduced by one before conversion so the range correctly
// includes the last partial block and nothing beyond it (spec.md §4.1).
func forEachBlock(startMin, endMin int, fn func(block int)) {
	if endMin <= startMin {
		return
	}
	startBlock := MinuteToBlock(startMin)
	endBlock := MinuteToBlock(endMin - 1)
	if endBlock >= BlocksPerWeek {
		endBlock = BlocksPerWeek - 1
	}
	for b := startBlock; b <= endBlock; b++ {
		fn(b)
	}
}

// Popcount returns the number of set bits in the bitmap.
func (b *Bitmap) Popcount() int {
	n := 0
	for _, v := range b {
		if v {
			n++
		}
	}
	return n
}
