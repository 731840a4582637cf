package activity

// Merge folds a fetched delta into the previously cached list, keyed by
// activity id. Records already present keep their position and take the newer
// copy; unseen records append in delta order.
func Merge(prev, delta []Record) []Record {
	if len(prev) == 0 {
		return delta
	}

	index := make(map[int64]int, len(prev))
	merged := make([]Record, len(prev), len(prev)+len(delta))
	copy(merged, prev)
	for i, r := range merged {
		index[r.ID] = i
	}

	for _, r := range delta {
		if i, ok := index[r.ID]; ok {
			merged[i] = r
			continue
		}
		index[r.ID] = len(merged)
		merged = append(merged, r)
	}
	return merged
}
