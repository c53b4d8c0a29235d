package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"igfollowcheck/pkg/config"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/logger"
)

// Category identifies which relationship list a file belongs to
type Category string

const (
	Following Category = "following"
	Followers Category = "followers"
)

// preferredDir is where Instagram puts the relationship lists
const preferredDir = "followers_and_following"

// Relationship exports that mention a keyword but do not list accounts.
// Only consulted in permissive mode.
var excludedNames = []string{"hashtag"}

var strictNames = map[Category]*regexp.Regexp{
	Following: regexp.MustCompile(`^following\.json$`),
	Followers: regexp.MustCompile(`^followers(_[0-9]+)?\.json$`),
}

// Candidates holds the files located for each category.
// Paths are absolute; ordering puts files under followers_and_following first.
type Candidates struct {
	Root      string
	Following []string
	Followers []string
	Ambiguous []string

	// Directories or files that could not be read and were skipped
	Unreadable []string
}

// Files returns the candidates for a category
func (c *Candidates) Files(category Category) []string {
	if category == Following {
		return c.Following
	}
	return c.Followers
}

// Locate walks root and classifies JSON files into following and follower
// candidates. It fails with a data-not-found error when either list is empty.
func Locate(root, matchMode string) (*Candidates, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, igerrors.NewDataNotFound(root, "data path is not a directory")
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data path: %w", err)
	}

	candidates := &Candidates{Root: absRoot}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		return candidates.visit(matchMode, path, d, walkErr)
	})
	if err != nil {
		return nil, igerrors.NewDataNotFound(absRoot, fmt.Sprintf("failed to scan data directory: %v", err))
	}

	sortCandidates(absRoot, candidates.Following)
	sortCandidates(absRoot, candidates.Followers)
	sort.Strings(candidates.Ambiguous)

	var missing []string
	if len(candidates.Following) == 0 {
		missing = append(missing, string(Following))
	}
	if len(candidates.Followers) == 0 {
		missing = append(missing, string(Followers))
	}
	if len(missing) > 0 {
		return candidates, igerrors.NewDataNotFound(absRoot,
			fmt.Sprintf("no %s data found", strings.Join(missing, " or ")))
	}

	return candidates, nil
}

// visit classifies one walked entry. Unreadable entries below the root are
// recorded and skipped instead of aborting the walk.
func (c *Candidates) visit(matchMode, path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		if path == c.Root {
			return walkErr
		}
		logger.WithError(walkErr).WithField("path", path).Warn("Skipping unreadable path in export")
		c.Unreadable = append(c.Unreadable, path)
		if d != nil && d.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil
	}

	rel, err := filepath.Rel(c.Root, path)
	if err != nil {
		return err
	}

	category, ambiguous := Classify(filepath.ToSlash(rel), matchMode)
	switch {
	case ambiguous:
		c.Ambiguous = append(c.Ambiguous, path)
	case category == Following:
		c.Following = append(c.Following, path)
	case category == Followers:
		c.Followers = append(c.Followers, path)
	}
	return nil
}

// Classify assigns a slash-separated relative path to a category.
// The base name decides first; the directory part is only consulted when the
// base name mentions neither keyword. A deciding component that mentions both
// keywords makes the file ambiguous. In permissive mode, files such as
// following_hashtags.json are never classified.
func Classify(relPath, matchMode string) (category Category, ambiguous bool) {
	lower := strings.ToLower(relPath)
	dir, base := "", lower
	if i := strings.LastIndex(lower, "/"); i >= 0 {
		dir, base = lower[:i], lower[i+1:]
	}

	if matchMode == config.MatchStrict {
		for _, c := range []Category{Following, Followers} {
			if strictNames[c].MatchString(base) {
				return c, false
			}
		}
		return "", false
	}

	for _, excluded := range excludedNames {
		if strings.Contains(base, excluded) {
			return "", false
		}
	}

	if c, amb, ok := keywordIn(base); ok {
		return c, amb
	}
	if c, amb, ok := keywordIn(dir); ok {
		return c, amb
	}
	return "", false
}

// keywordIn reports which keyword s contains. ok is false when it has none.
func keywordIn(s string) (category Category, ambiguous, ok bool) {
	hasFollowing := strings.Contains(s, string(Following))
	hasFollowers := strings.Contains(s, string(Followers))
	switch {
	case hasFollowing && hasFollowers:
		return "", true, true
	case hasFollowing:
		return Following, false, true
	case hasFollowers:
		return Followers, false, true
	default:
		return "", false, false
	}
}

// sortCandidates orders files under followers_and_following first, then by path
func sortCandidates(root string, paths []string) {
	score := func(p string) int {
		rel, _ := filepath.Rel(root, p)
		if strings.Contains(strings.ToLower(filepath.ToSlash(rel)), preferredDir) {
			return 1
		}
		return 0
	}
	sort.SliceStable(paths, func(i, j int) bool {
		si, sj := score(paths[i]), score(paths[j])
		if si != sj {
			return si > sj
		}
		return paths[i] < paths[j]
	})
}
