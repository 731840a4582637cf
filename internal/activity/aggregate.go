package activity

// Sum adds the named numeric fields across all records. Fields a record does
// not carry count as zero, and an empty list yields zero for every requested
// field.
func Sum(records []Record, fields []string) map[string]float64 {
	totals := make(map[string]float64, len(fields))
	for _, f := range fields {
		totals[f] = 0
	}
	for _, r := range records {
		for _, f := range fields {
			totals[f] += r.field(f)
		}
	}
	return totals
}

func (r Record) field(name string) float64 {
	switch name {
	case "distance":
		return r.Distance
	case "moving_time":
		return r.MovingTime
	}
	return 0
}
