package atlas

import "fmt"

// GenerateFrameNames builds prefix + zero-padded number + suffix for every number
// from start to end inclusive. Counts down when end < start.
//
// GenerateFrameNames("tile_", 0, 2, ".png", 4) -> tile_0000.png, tile_0001.png, tile_0002.png
func GenerateFrameNames(prefix string, start, end int, suffix string, zeroPad int) []string {
	step := 1
	if end < start {
		step = -1
	}
	names := make([]string, 0, abs(end-start)+1)
	for i := start; ; i += step {
		names = append(names, fmt.Sprintf("%s%0*d%s", prefix, zeroPad, i, suffix))
		if i == end {
			break
		}
	}
	return names
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
