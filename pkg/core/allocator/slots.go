package allocator

// FindSlot returns the first start hour, in the order hours appear in
// availability, for which every hour in [start, start+duration) is available.
// The earliest hour by value does not win over an earlier list position.
func FindSlot(availability []int, duration int) (int, bool) {
	// a block can never be longer than the number of free hours
	if duration < 1 || duration > len(availability) {
		return 0, false
	}

	free := make(map[int]struct{}, len(availability))
	for _, h := range availability {
		free[h] = struct{}{}
	}

	for _, start := range availability {
		fits := true
		for h := start; h < start+duration; h++ {
			if _, ok := free[h]; !ok {
				fits = false
				break
			}
		}
		if fits {
			return start, true
		}
	}

	return 0, false
}
