// Package followdiff computes the asymmetric differences between the
// following and followers sets of an export.
package followdiff

import (
	"sort"

	"golang.org/x/text/cases"
)

// Result holds both difference lists, sorted case-insensitively
type Result struct {
	// Accounts the owner follows that do not follow back
	NotFollowingBack []string
	// Accounts following the owner that the owner does not follow
	YouDontFollowBack []string
	// Size of following ∩ followers
	Mutual int

	FollowingCount int
	FollowersCount int
}

// Compute returns following − followers and followers − following.
// Neither input is modified.
func Compute(following, followers Set) Result {
	notFollowingBack := following.Minus(followers)
	youDontFollowBack := followers.Minus(following)
	SortUsernames(notFollowingBack)
	SortUsernames(youDontFollowBack)

	if notFollowingBack == nil {
		notFollowingBack = []string{}
	}
	if youDontFollowBack == nil {
		youDontFollowBack = []string{}
	}

	return Result{
		NotFollowingBack:  notFollowingBack,
		YouDontFollowBack: youDontFollowBack,
		Mutual:            following.Len() - len(notFollowingBack),
		FollowingCount:    following.Len(),
		FollowersCount:    followers.Len(),
	}
}

// SortUsernames sorts in place by case-folded value, ties broken by raw bytes
func SortUsernames(usernames []string) {
	folder := cases.Fold()
	keys := make(map[string]string, len(usernames))
	for _, u := range usernames {
		keys[u] = folder.String(u)
	}
	sort.Slice(usernames, func(i, j int) bool {
		ki, kj := keys[usernames[i]], keys[usernames[j]]
		if ki != kj {
			return ki < kj
		}
		return usernames[i] < usernames[j]
	})
}
