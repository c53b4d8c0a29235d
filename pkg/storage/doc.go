// Package storage writes the result lists of a follow check.
//
// The Manager owns an output directory and writes each list under a fixed
// name (not_following_back, you_dont_follow_back) in plain text or CSV.
// Files are written to a temporary sibling first and renamed into place, so a
// failed run never leaves a half-written result behind. Existing results are
// overwritten.
//
//	manager, err := storage.NewManager("./results")
//	if err != nil {
//	    return err
//	}
//	paths, err := manager.WriteResults(result, config.FormatCSV)
package storage
