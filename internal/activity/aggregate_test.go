package activity

import "testing"

func TestSum(t *testing.T) {
	records := []Record{
		{ID: 1, Distance: 10, MovingTime: 5},
		{ID: 2, Distance: 0, MovingTime: 3},
	}

	totals := Sum(records, []string{"distance", "moving_time"})
	if totals["distance"] != 10 {
		t.Fatalf("unexpected distance sum: %v", totals["distance"])
	}
	if totals["moving_time"] != 8 {
		t.Fatalf("unexpected moving_time sum: %v", totals["moving_time"])
	}
}

func TestSumEmptyInput(t *testing.T) {
	totals := Sum(nil, []string{"distance", "moving_time"})
	if totals["distance"] != 0 || totals["moving_time"] != 0 {
		t.Fatalf("empty input must sum to zero: %v", totals)
	}
}

func TestSumUnknownField(t *testing.T) {
	totals := Sum([]Record{{ID: 1, Distance: 4}}, []string{"elevation"})
	if totals["elevation"] != 0 {
		t.Fatalf("unknown field must count as zero: %v", totals)
	}
}
