package ui

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"igfollowcheck/pkg/export"
	"igfollowcheck/pkg/followdiff"
)

// PrintDiscovered lists the files the locator found, relative to the export root
func PrintDiscovered(c *export.Candidates) {
	if quietMode || c == nil {
		return
	}
	PrintInfo("Scanning", c.Root)
	printFiles := func(label string, paths []string) {
		PrintHighlight(fmt.Sprintf("%s (%d)", label, len(paths)))
		for _, p := range paths {
			fmt.Fprintf(out, "  %s\n", relTo(c.Root, p))
		}
	}
	printFiles("Following files", c.Following)
	printFiles("Followers files", c.Followers)
	if len(c.Ambiguous) > 0 {
		printFiles("Ambiguous files (ignored)", c.Ambiguous)
	}
	if len(c.Unreadable) > 0 {
		printFiles("Unreadable paths (skipped)", c.Unreadable)
	}
}

// PrintCategoryReport prints per-file parse results of one category
func PrintCategoryReport(root string, r *export.CategoryReport) {
	if quietMode || r == nil {
		return
	}
	for _, f := range r.Parsed {
		fmt.Fprintf(out, "  %s %s: %s usernames\n",
			Green("[ok]"), relTo(root, f.Path), humanize.Comma(int64(f.Usernames)))
	}
	for _, f := range r.Failed {
		fmt.Fprintf(out, "  %s %s: %v\n", Yellow("[skip]"), relTo(root, f.Path), f.Err)
	}
}

// PrintSummary prints the result counts and where they were written
func PrintSummary(result followdiff.Result, skippedFiles int, paths []string) {
	if quietMode {
		return
	}
	Println()
	PrintHighlight("Results")
	PrintHighlight("-------")
	PrintInfo("People you follow who don't follow you back", count(len(result.NotFollowingBack)))
	PrintInfo("People who follow you that you don't follow back", count(len(result.YouDontFollowBack)))
	PrintInfo("Mutual", count(result.Mutual))
	if skippedFiles > 0 {
		PrintWarning(fmt.Sprintf("Skipped %d unreadable file(s)", skippedFiles))
	}
	if len(paths) > 0 {
		Println()
		Println("Written to:")
		for _, p := range paths {
			Println("  " + p)
		}
	}
}

// PrintSetSizes prints the sizes of the loaded sets
func PrintSetSizes(result followdiff.Result) {
	PrintInfo("Following", count(result.FollowingCount))
	PrintInfo("Followers", count(result.FollowersCount))
}

// PrintPreview prints up to limit usernames of a result list
func PrintPreview(title string, usernames []string, limit int) {
	if quietMode {
		return
	}
	Println()
	PrintHighlight(fmt.Sprintf("Top %d preview: %s", limit, title))
	shown := usernames
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, u := range shown {
		Println("  @" + u)
	}
	if rest := len(usernames) - len(shown); rest > 0 {
		Println(Dim(fmt.Sprintf("  ... and %s more", humanize.Comma(int64(rest)))))
	}
}

// PrintExpectedLayout explains where the relationship files usually live
func PrintExpectedLayout() {
	PrintHint("Expected folder structure:")
	PrintHint("  connections/")
	PrintHint("    followers_and_following/")
	PrintHint("      followers_1.json")
	PrintHint("      followers_2.json   (if you have many followers)")
	PrintHint("      following.json")
	PrintHint("Make sure you requested JSON format when downloading from Instagram.")
	PrintHint("(Settings → Accounts Center → Download your information → JSON)")
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
