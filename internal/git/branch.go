package git

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// Branch is a local branch and, when configured, its remote counterpart.
type Branch struct {
	Name       string
	ID         string
	Tracking   string // e.g. origin/feature, empty when none
	TrackingID string
}

// Branches lists local branches sorted by name, with tracking branches
// resolved through the repository configuration. A configured tracking branch
// whose remote ref is missing locally is reported as having none.
func (s *Service) Branches() ([]Branch, error) {
	iter, err := s.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer iter.Close()

	cfg, err := s.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read repository config: %w", err)
	}

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		b := Branch{Name: ref.Name().Short(), ID: ref.Hash().String()}
		if tracked, ok := cfg.Branches[b.Name]; ok && tracked.Remote != "" && tracked.Merge != "" {
			remoteRef := tracked.Remote + "/" + tracked.Merge.Short()
			if id, err := s.ResolveRef(remoteRef); err == nil {
				b.Tracking = remoteRef
				b.TrackingID = id
			}
		}
		branches = append(branches, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// go-git iterates refs in storage order; sort for deterministic output.
	slices.SortFunc(branches, func(a, b Branch) int {
		return strings.Compare(a.Name, b.Name)
	})
	return branches, nil
}
