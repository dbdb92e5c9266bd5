package git

import (
	"fmt"
	"log/slog"
	"strings"
)

const headBranchPrefix = "HEAD branch:"

var trunkFallbacks = []string{"main", "trunk", "master"}

// Trunk resolves the reference name and commit of the repository's main
// integration branch. An explicit override wins; otherwise the first remote
// is asked for its default branch, falling back to common names.
func (s *Service) Trunk(override string) (name string, id string, err error) {
	if override != "" {
		id, err := s.ResolveRef(override)
		if err != nil {
			return "", "", fmt.Errorf("trunk: %w", err)
		}
		return override, id, nil
	}

	var candidates []string
	if remote, branch := s.inferDefaultBranch(); branch != "" {
		candidates = append(candidates, remote+"/"+branch)
	}
	for _, fallback := range trunkFallbacks {
		candidates = append(candidates, "origin/"+fallback)
	}
	for _, candidate := range candidates {
		if id, err := s.ResolveRef(candidate); err == nil {
			slog.Debug("trunk resolved", slog.String("ref", candidate))
			return candidate, id, nil
		}
	}
	return "", "", fmt.Errorf("unable to find the trunk branch, set remote.head in the smartlog config")
}

// inferDefaultBranch asks the first remote for its HEAD branch. go-git has no
// equivalent of `git remote show`, which queries the remote itself, so this
// shells out.
func (s *Service) inferDefaultBranch() (remote string, branch string) {
	out, err := s.runGitCommand("remote")
	if err != nil {
		slog.Debug("list remotes", slog.Any("error", err))
		return "", ""
	}
	remotes := strings.Fields(out)
	if len(remotes) == 0 {
		return "", ""
	}
	out, err = s.runGitCommand("remote", "show", remotes[0])
	if err != nil {
		slog.Debug("query remote HEAD", slog.String("remote", remotes[0]), slog.Any("error", err))
		return "", ""
	}
	return remotes[0], parseHeadBranch(out)
}

// parseHeadBranch extracts the default branch name from `git remote show`
// output.
func parseHeadBranch(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), headBranchPrefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
