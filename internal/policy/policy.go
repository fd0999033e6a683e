// Package policy holds the access rules for posts. Both predicates are
// pure functions over a post snapshot so the list and single-fetch paths
// share one definition of visibility.
package policy

import (
	"time"

	"blogapi/internal/models"
)

// Visible reports whether a post is publicly readable at the given time.
// A post is visible when it is not a draft and its publish timestamp is
// either unset or not in the future. The boundary is inclusive: a post
// published exactly at now is visible.
func Visible(post *models.Post, now time.Time) bool {
	if post.IsDraft {
		return false
	}
	if post.PublishedAt == nil {
		return true
	}
	return !post.PublishedAt.After(now)
}

// OwnedBy reports whether the given user may mutate or delete the post.
// Only the original author qualifies; authorship never changes.
func OwnedBy(post *models.Post, userID string) bool {
	return post.AuthorID == userID
}
