// Package git wraps a go-git repository behind the narrow read surface the
// smartlog needs: commit lookups, reference resolution and trunk detection.
package git

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

type Service struct {
	repo *gitlib.Repository
	path string

	// cache avoids re-reading commit objects: the tree builder asks for the
	// same commit several times while walking overlapping branches.
	cache map[plumbing.Hash]*object.Commit
}

func Open(repoPath string) (*Service, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &Service{repo: repo, path: abs, cache: map[plumbing.Hash]*object.Commit{}}, nil
}

func (s *Service) RepoPath() string {
	return s.path
}

// GitDir returns the repository metadata directory, where the smartlog config
// lives.
func (s *Service) GitDir() string {
	if st, ok := s.repo.Storer.(*filesystem.Storage); ok {
		return st.Filesystem().Root()
	}
	return filepath.Join(s.path, ".git")
}

// Head returns the current checkout commit and branch name. The branch name
// is empty when HEAD is detached.
func (s *Service) Head() (id string, branch string, err error) {
	ref, err := s.repo.Head()
	if err != nil {
		return "", "", fmt.Errorf("resolve HEAD: %w", err)
	}
	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	return ref.Hash().String(), branch, nil
}

// ResolveRef resolves a short or full reference name to a commit id.
func (s *Service) ResolveRef(name string) (string, error) {
	hash, err := s.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}
	return hash.String(), nil
}

func (s *Service) commit(id string) (*object.Commit, error) {
	hash := plumbing.NewHash(id)
	if c, ok := s.cache[hash]; ok {
		return c, nil
	}
	c, err := s.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", id, err)
	}
	s.cache[hash] = c
	return c, nil
}

// Parents implements smartlog.CommitSource.
func (s *Service) Parents(id string) ([]string, error) {
	c, err := s.commit(id)
	if err != nil {
		return nil, err
	}
	parents := make([]string, len(c.ParentHashes))
	for i, h := range c.ParentHashes {
		parents[i] = h.String()
	}
	return parents, nil
}

// Timestamp implements smartlog.CommitSource.
func (s *Service) Timestamp(id string) (time.Time, error) {
	c, err := s.commit(id)
	if err != nil {
		return time.Time{}, err
	}
	return c.Committer.When, nil
}

// Summary implements smartlog.CommitSource.
func (s *Service) Summary(id string) (string, error) {
	c, err := s.commit(id)
	if err != nil {
		return "", err
	}
	return strings.SplitN(strings.TrimSpace(c.Message), "\n", 2)[0], nil
}
