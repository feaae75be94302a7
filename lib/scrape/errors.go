package scrape

import "fmt"

// ConsistencyError means a leaf query retrieved a different number of
// rows than the surface reported, so completeness for that subtree
// cannot be demonstrated.
type ConsistencyError struct {
	Criteria string
	Reported int
	Got      int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: expected %d rows, scraped %d", e.Criteria, e.Reported, e.Got)
}

// DepthError means a prefix was still at or above the cap at the
// domain's maximum depth, leaving no way to subdivide further.
type DepthError struct {
	Criteria string
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%s: still capped at maximum prefix depth", e.Criteria)
}
