package planner

import "slices"

// walkBack follows predecessors from last until pred reports none, then
// returns the visited indices in root-to-last order. It serves both roadmap
// predecessor arrays and tree parent links.
func walkBack(last int, pred func(int) (int, bool)) []int {
	route := []int{last}
	for cur, ok := pred(last); ok; cur, ok = pred(cur) {
		route = append(route, cur)
	}
	slices.Reverse(route)
	return route
}

// PathLength returns the summed Euclidean length of consecutive segments.
func PathLength(path []Configuration) float64 {
	length := 0.0
	for i := 1; i < len(path); i++ {
		length += path[i-1].DistanceTo(path[i])
	}
	return length
}

// PathLength3D is the volumetric counterpart of PathLength.
func PathLength3D(path []Configuration3D) float64 {
	length := 0.0
	for i := 1; i < len(path); i++ {
		length += path[i-1].DistanceTo(path[i])
	}
	return length
}
