package smartlog

import (
	"errors"
	"fmt"
	"time"
)

// ErrDisconnected is returned by Add when a commit's first-parent chain runs
// off the start of history without ever meeting the tree. It means the
// requested commit does not descend from the root the builder was given.
var ErrDisconnected = errors.New("commit does not descend from the tree root")

// TreeBuilder folds interesting commits into a single tree rooted at the
// trunk head. Ancestors older than the date limit are elided and counted
// instead of materialized.
type TreeBuilder struct {
	src       CommitSource
	root      *TreeNode
	nodes     map[string]*TreeNode
	dateLimit time.Time // zero means no limit
	skipCount int
}

// NewTreeBuilder creates a tree containing only the root commit. The root is
// always kept, no matter how old it is.
func NewTreeBuilder(src CommitSource, rootID string, dateLimit time.Time) (*TreeBuilder, error) {
	c, err := materialize(src, rootID)
	if err != nil {
		return nil, err
	}
	root := newTreeNode(c)
	return &TreeBuilder{
		src:       src,
		root:      root,
		nodes:     map[string]*TreeNode{rootID: root},
		dateLimit: dateLimit,
	}, nil
}

func (b *TreeBuilder) Root() *TreeNode {
	return b.root
}

// SkipCount is the number of commits elided so far for being older than the
// date limit.
func (b *TreeBuilder) SkipCount() int {
	return b.skipCount
}

// Add walks first-parents from id until the walk meets a commit already in
// the tree, then attaches the walked chain beneath it, oldest commit first.
// The commit passed in is exempt from the date limit; older ancestors switch
// the walk to counting mode and the pending chain is dropped, since a chain
// that never met the tree has nowhere to attach.
func (b *TreeBuilder) Add(id string, ignoreDateLimit bool) error {
	var chain []*TreeNode // newest first
	cur := id
	for {
		if at, ok := b.nodes[cur]; ok {
			b.attach(at, chain)
			return nil
		}
		c, err := materialize(b.src, cur)
		if err != nil {
			return err
		}
		if cur != id && !ignoreDateLimit && b.tooOld(c.When) {
			return b.countElided(c)
		}
		chain = append(chain, newTreeNode(c))
		if len(c.Parents) == 0 {
			return fmt.Errorf("walking %s, reached root commit %s: %w", id, cur, ErrDisconnected)
		}
		cur = c.Parents[0]
	}
}

func (b *TreeBuilder) tooOld(when time.Time) bool {
	return !b.dateLimit.IsZero() && when.Before(b.dateLimit)
}

// countElided counts the commits a full walk would still have placed: first
// (already past the cutoff) and its first-parent ancestors, stopping when the
// walk meets the tree or history ends.
func (b *TreeBuilder) countElided(first Commit) error {
	c := first
	for {
		b.skipCount++
		if len(c.Parents) == 0 {
			return nil
		}
		next := c.Parents[0]
		if _, ok := b.nodes[next]; ok {
			return nil
		}
		var err error
		c, err = materialize(b.src, next)
		if err != nil {
			return err
		}
	}
}

// attach hangs the walked chain beneath the node the walk stopped at. The
// chain is newest-first, so it is consumed backwards: the oldest commit
// becomes a direct child of the meeting point.
func (b *TreeBuilder) attach(parent *TreeNode, chain []*TreeNode) {
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		n.Parent = parent
		parent.Children = append(parent.Children, n)
		b.nodes[n.Commit.ID] = n
		parent = n
	}
}

func materialize(src CommitSource, id string) (Commit, error) {
	parents, err := src.Parents(id)
	if err != nil {
		return Commit{}, fmt.Errorf("parents of %s: %w", id, err)
	}
	when, err := src.Timestamp(id)
	if err != nil {
		return Commit{}, fmt.Errorf("timestamp of %s: %w", id, err)
	}
	summary, err := src.Summary(id)
	if err != nil {
		return Commit{}, fmt.Errorf("summary of %s: %w", id, err)
	}
	return Commit{ID: id, Parents: parents, When: when, Summary: summary}, nil
}
