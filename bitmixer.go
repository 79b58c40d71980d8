package automata

const (
	// Golden ratio bit mixer.
	phiC64 = uint64(0x9e3779b97f4a7c15)
)

// MurmurHash3 32-bit finalizer. Spreads dense state indices before they are
// summed into set hashes.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// hashInts Position-sensitive hash for state tuples: unlike the summed set
// hash, (0,1) and (1,0) must land in different buckets.
func hashInts(values []int) uint64 {
	h := phiC64
	for _, v := range values {
		h = h*31 + uint64(mix32(v))
	}
	return h
}
