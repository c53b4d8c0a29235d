package checker

import "igfollowcheck/pkg/followdiff"

// ResultWriter persists the two result lists
type ResultWriter interface {
	WriteResults(result followdiff.Result, format string) ([]string, error)
}
