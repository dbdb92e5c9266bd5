package git

import (
	"fmt"
	"slices"
	"testing"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var testBase = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func createTestRepo(t *testing.T, commits int) (dir string, hashes []string) {
	t.Helper()
	dir = t.TempDir()
	repo, err := gitlib.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	for i := 0; i < commits; i++ {
		hash, err := wt.Commit(fmt.Sprintf("commit %d\n\nbody %d", i+1, i+1), &gitlib.CommitOptions{
			AllowEmptyCommits: true,
			Author: &object.Signature{
				Name:  "Test",
				Email: "test@example.com",
				When:  testBase.Add(time.Duration(i) * time.Minute),
			},
		})
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		hashes = append(hashes, hash.String())
	}
	return dir, hashes
}

func openTestRepo(t *testing.T, dir string) *Service {
	t.Helper()
	svc, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return svc
}

func setRef(t *testing.T, dir, name, id string) {
	t.Helper()
	repo, err := gitlib.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.ReferenceName(name), plumbing.NewHash(id))
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("SetReference(%s): %v", name, err)
	}
}

func TestOpenMissingRepository(t *testing.T) {
	t.Parallel()

	if _, err := Open(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without a repository")
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 2)
	svc := openTestRepo(t, dir)

	id, branch, err := svc.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if id != hashes[1] {
		t.Fatalf("Head id = %s, want %s", id, hashes[1])
	}
	if branch != "master" {
		t.Fatalf("Head branch = %q, want master", branch)
	}
}

func TestCommitSource(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 2)
	svc := openTestRepo(t, dir)

	parents, err := svc.Parents(hashes[1])
	if err != nil {
		t.Fatalf("Parents: %v", err)
	}
	if !slices.Equal(parents, []string{hashes[0]}) {
		t.Fatalf("Parents = %#v, want [%s]", parents, hashes[0])
	}
	rootParents, err := svc.Parents(hashes[0])
	if err != nil {
		t.Fatalf("Parents(root): %v", err)
	}
	if len(rootParents) != 0 {
		t.Fatalf("Parents(root) = %#v, want none", rootParents)
	}

	when, err := svc.Timestamp(hashes[1])
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	if !when.Equal(testBase.Add(time.Minute)) {
		t.Fatalf("Timestamp = %v, want %v", when, testBase.Add(time.Minute))
	}

	summary, err := svc.Summary(hashes[1])
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary != "commit 2" {
		t.Fatalf("Summary = %q, want first message line only", summary)
	}
}

func TestCommitSourceUnknownCommit(t *testing.T) {
	t.Parallel()

	dir, _ := createTestRepo(t, 1)
	svc := openTestRepo(t, dir)

	if _, err := svc.Parents("0123456789abcdef0123456789abcdef01234567"); err == nil {
		t.Fatal("expected an error for an unknown commit")
	}
}

func TestResolveRef(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 1)
	svc := openTestRepo(t, dir)

	id, err := svc.ResolveRef("master")
	if err != nil {
		t.Fatalf("ResolveRef(master): %v", err)
	}
	if id != hashes[0] {
		t.Fatalf("ResolveRef(master) = %s, want %s", id, hashes[0])
	}
	if _, err := svc.ResolveRef("no-such-ref"); err == nil {
		t.Fatal("expected an error for an unknown ref")
	}
}

func TestBranchesWithTracking(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 2)
	setRef(t, dir, "refs/heads/feature", hashes[0])
	setRef(t, dir, "refs/remotes/origin/feature", hashes[1])

	repo, err := gitlib.PlainOpen(dir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	cfg, err := repo.Config()
	if err != nil {
		t.Fatalf("Config: %v", err)
	}
	cfg.Branches["feature"] = &gitconfig.Branch{
		Name:   "feature",
		Remote: "origin",
		Merge:  plumbing.ReferenceName("refs/heads/feature"),
	}
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	svc := openTestRepo(t, dir)
	branches, err := svc.Branches()
	if err != nil {
		t.Fatalf("Branches: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("expected 2 branches, got %#v", branches)
	}
	// Sorted by name: feature before master.
	feature, master := branches[0], branches[1]
	if feature.Name != "feature" || feature.ID != hashes[0] {
		t.Fatalf("unexpected feature branch: %+v", feature)
	}
	if feature.Tracking != "origin/feature" || feature.TrackingID != hashes[1] {
		t.Fatalf("tracking not resolved: %+v", feature)
	}
	if master.Name != "master" || master.Tracking != "" {
		t.Fatalf("unexpected master branch: %+v", master)
	}
}

func TestTrunkOverride(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 1)
	setRef(t, dir, "refs/remotes/origin/develop", hashes[0])
	svc := openTestRepo(t, dir)

	name, id, err := svc.Trunk("origin/develop")
	if err != nil {
		t.Fatalf("Trunk: %v", err)
	}
	if name != "origin/develop" || id != hashes[0] {
		t.Fatalf("Trunk = (%s, %s), want (origin/develop, %s)", name, id, hashes[0])
	}

	if _, _, err := svc.Trunk("origin/gone"); err == nil {
		t.Fatal("expected an error for an unresolvable override")
	}
}

func TestTrunkFallsBackToCommonNames(t *testing.T) {
	t.Parallel()

	dir, hashes := createTestRepo(t, 1)
	setRef(t, dir, "refs/remotes/origin/main", hashes[0])
	svc := openTestRepo(t, dir)

	name, id, err := svc.Trunk("")
	if err != nil {
		t.Fatalf("Trunk: %v", err)
	}
	if name != "origin/main" || id != hashes[0] {
		t.Fatalf("Trunk = (%s, %s), want (origin/main, %s)", name, id, hashes[0])
	}
}

func TestTrunkNotFound(t *testing.T) {
	t.Parallel()

	dir, _ := createTestRepo(t, 1)
	svc := openTestRepo(t, dir)

	if _, _, err := svc.Trunk(""); err == nil {
		t.Fatal("expected an error when no trunk candidate resolves")
	}
}

func TestParseHeadBranch(t *testing.T) {
	t.Parallel()

	out := `* remote origin
  Fetch URL: git@example.com:user/repo.git
  Push  URL: git@example.com:user/repo.git
  HEAD branch: develop
  Remote branches:
    develop tracked
    main    tracked
`
	if got := parseHeadBranch(out); got != "develop" {
		t.Fatalf("parseHeadBranch() = %q, want develop", got)
	}
	if got := parseHeadBranch("no head line here"); got != "" {
		t.Fatalf("parseHeadBranch() = %q, want empty", got)
	}
}
