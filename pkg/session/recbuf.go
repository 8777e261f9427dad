package session

// RecordBuffer is a bounded queue of fixed-length sample chunks backed
// by one flat buffer. It replaces manual index arithmetic with explicit
// write-next-chunk / full / reset operations, keeping the overflow and
// reset invariants in one place. Single owner, not safe for concurrent
// use.
type RecordBuffer struct {
	data      []int16
	chunkLen  int
	numChunks int
	written   int
}

// NewRecordBuffer creates a buffer holding numChunks chunks of chunkLen
// samples each.
func NewRecordBuffer(numChunks, chunkLen int) *RecordBuffer {
	if numChunks <= 0 || chunkLen <= 0 {
		panic("session: invalid record buffer geometry")
	}
	return &RecordBuffer{
		data:      make([]int16, numChunks*chunkLen),
		chunkLen:  chunkLen,
		numChunks: numChunks,
	}
}

// NextChunk returns the destination slice for the next chunk to be
// captured into, or false if the buffer is full. The chunk only counts
// as written once Commit is called.
func (b *RecordBuffer) NextChunk() ([]int16, bool) {
	if b.written >= b.numChunks {
		return nil, false
	}
	off := b.written * b.chunkLen
	return b.data[off : off+b.chunkLen], true
}

// Commit marks the chunk returned by the last NextChunk as written.
func (b *RecordBuffer) Commit() {
	if b.written < b.numChunks {
		b.written++
	}
}

// Full reports whether every chunk has been written.
func (b *RecordBuffer) Full() bool {
	return b.written >= b.numChunks
}

// Reset logically clears the buffer by rewinding the write cursor.
// Sample memory is reused; stale samples are overwritten before they
// can be observed because Samples is only valid once Full.
func (b *RecordBuffer) Reset() {
	b.written = 0
}

// Written returns the number of chunks written so far.
func (b *RecordBuffer) Written() int {
	return b.written
}

// Progress returns the recording progress as a percentage (0..100).
func (b *RecordBuffer) Progress() int {
	return b.written * 100 / b.numChunks
}

// LastChunk returns the most recently written chunk, or nil if nothing
// has been written since the last Reset.
func (b *RecordBuffer) LastChunk() []int16 {
	if b.written == 0 {
		return nil
	}
	off := (b.written - 1) * b.chunkLen
	return b.data[off : off+b.chunkLen]
}

// Samples returns the full flat sample buffer. Only valid once Full
// reports true.
func (b *RecordBuffer) Samples() []int16 {
	return b.data
}
