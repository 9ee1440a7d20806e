package solver

import "sync/atomic"

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// 16 bytes
type transEntry struct {
	gate     int32
	key32    uint32
	gain     uint16
	date     uint16
	searched uint8
}

// transTable maps position keys to upper bounds on the score still
// obtainable from that position. Capacity is fixed at construction;
// replacement prefers entries written or touched in the current search
// (date), so stale positions age out first. A lost or evicted entry only
// costs pruning efficiency: on a miss the search falls back to the static
// estimate, which is also an admissible bound.
type transTable struct {
	megabytes int
	entries   []transEntry
	date      uint16
	mask      uint32
}

func newTransTable(megabytes int) *transTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 16)
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) IncDate() {
	tt.date = (tt.date + 1) & 0x7ff
}

func (tt *transTable) Clear() {
	tt.date = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) Read(key uint64) (gain int, ok bool) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		if entry.key32 == uint32(key>>32) {
			entry.date = tt.date
			gain = int(entry.gain)
			ok = true
		}
		atomic.StoreInt32(&entry.gate, 0)
	}
	return
}

// Update records an upper bound on the remaining gain below key. searched
// marks bounds refined by expanding the position, which beat the static
// estimates stored on first sight.
func (tt *transTable) Update(key uint64, gain int, searched bool) {
	var entry = &tt.entries[uint32(key)&tt.mask]
	if atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		var replace bool
		if entry.key32 == uint32(key>>32) {
			replace = searched || entry.searched == 0
		} else {
			replace = entry.date != tt.date || searched && entry.searched == 0
		}
		if replace {
			entry.key32 = uint32(key >> 32)
			entry.gain = uint16(gain)
			entry.date = tt.date
			if searched {
				entry.searched = 1
			} else {
				entry.searched = 0
			}
		}
		atomic.StoreInt32(&entry.gate, 0)
	}
}
