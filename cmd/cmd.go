package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/thiagokokada/git-smartlog/internal/app"
	"github.com/thiagokokada/git-smartlog/internal/buildinfo"
)

func Run() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	fs := flag.NewFlagSet("git-smartlog", flag.ContinueOnError)
	all := fs.Bool("a", false, "display all commits, regardless of age")
	days := fs.Int("days", 0, "hide commits older than this many days (default 14, or the config value)")
	watch := fs.Bool("watch", false, "keep running and re-render when the repository changes")
	noReview := fs.Bool("no-review", false, "skip the GitHub pull request status lookup")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.VersionWithTags())
		return nil
	}
	if *days < 0 {
		return fmt.Errorf("-days must not be negative")
	}
	repoPath := "."
	remaining := fs.Args()
	if len(remaining) > 0 {
		repoPath = remaining[len(remaining)-1]
	}
	return app.Run(app.Options{
		RepoPath:   repoPath,
		All:        *all,
		Days:       *days,
		Watch:      *watch,
		SkipReview: *noReview,
		Verbose:    *verbose,
	})
}
