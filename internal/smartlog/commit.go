// Package smartlog builds and renders a condensed tree of the commits that
// matter to the current user: the trunk, local branches, their upstreams and
// any extra configured references, with old ancestry elided.
package smartlog

import "time"

// Commit is the slice of repository data the smartlog needs per commit.
type Commit struct {
	ID      string
	Parents []string
	When    time.Time
	Summary string
}

// CommitSource supplies commit data for tree construction. Implementations
// must be deterministic for the duration of a run.
type CommitSource interface {
	Parents(id string) ([]string, error)
	Timestamp(id string) (time.Time, error)
	Summary(id string) (string, error)
}
