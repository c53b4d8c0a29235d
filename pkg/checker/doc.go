// Package checker runs a complete follow check over an unzipped Instagram
// export.
//
// A run is strictly sequential: the export package locates and parses the
// following and followers files, followdiff computes both asymmetric
// differences, and a ResultWriter (storage.Manager by default) writes them.
// Unreadable files are skipped and reported; a missing category, a category
// with no parseable file, or an output failure stops the run with a typed
// error from the errors package.
//
//	c, err := checker.New(cfg)
//	if err != nil {
//	    return err
//	}
//	report, err := c.Run()
package checker
