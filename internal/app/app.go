// Package app wires the smartlog together: it resolves the trunk and the
// interesting refs, builds the commit tree and renders it.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/thiagokokada/git-smartlog/internal/config"
	gitsvc "github.com/thiagokokada/git-smartlog/internal/git"
	"github.com/thiagokokada/git-smartlog/internal/review"
	"github.com/thiagokokada/git-smartlog/internal/smartlog"
)

const defaultMaxAgeDays = 14

type Options struct {
	RepoPath   string
	All        bool // ignore the age cutoff entirely
	Days       int  // age cutoff override, 0 means config or default
	Watch      bool
	SkipReview bool
	Verbose    bool
}

func Run(opts Options) error {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	svc, err := gitsvc.Open(opts.RepoPath)
	if err != nil {
		return err
	}
	cfg, err := config.Load(svc.GitDir())
	if err != nil {
		return err
	}
	a := &app{
		svc:          svc,
		cfg:          cfg,
		opts:         opts,
		out:          os.Stdout,
		colorize:     term.IsTerminal(int(os.Stdout.Fd())),
		fetchReviews: review.Fetch,
	}
	if opts.SkipReview {
		a.fetchReviews = func() map[string]review.Status { return nil }
	}
	if opts.Watch {
		return a.watch()
	}
	return a.renderOnce()
}

type app struct {
	svc          *gitsvc.Service
	cfg          config.Config
	opts         Options
	out          io.Writer
	colorize     bool
	fetchReviews func() map[string]review.Status
}

func (a *app) renderOnce() error {
	start := time.Now()
	skipped, err := a.render(a.out, a.dateLimit(start))
	if err != nil {
		return err
	}
	if skipped > 0 {
		fmt.Fprintf(a.out, "Skipped %d old commits. Use -a to display them.\n", skipped)
	}
	fmt.Fprintf(a.out, "Finished in %.2f s.\n", time.Since(start).Seconds())
	return nil
}

// dateLimit computes the age cutoff; zero means show everything.
func (a *app) dateLimit(now time.Time) time.Time {
	if a.opts.All {
		return time.Time{}
	}
	days := a.opts.Days
	if days == 0 {
		days = a.cfg.Days
	}
	if days == 0 {
		days = defaultMaxAgeDays
	}
	return now.AddDate(0, 0, -days)
}

func (a *app) render(w io.Writer, dateLimit time.Time) (skipped int, err error) {
	trunkName, trunkID, err := a.svc.Trunk(a.cfg.Remote.Head)
	if err != nil {
		return 0, err
	}
	headID, _, err := a.svc.Head()
	if err != nil {
		return 0, err
	}

	refs := smartlog.NewRefMap(headID)
	refs.Add(trunkName, trunkID)
	refs.MarkTrunk(trunkName)

	builder, err := smartlog.NewTreeBuilder(a.svc, trunkID, dateLimit)
	if err != nil {
		return 0, err
	}
	// The checkout position is always shown, however old it is.
	if err := builder.Add(headID, true); err != nil {
		return 0, fmt.Errorf("add HEAD: %w", err)
	}

	branches, err := a.svc.Branches()
	if err != nil {
		return 0, err
	}
	for _, b := range branches {
		slog.Debug("adding local branch", slog.String("name", b.Name))
		if err := builder.Add(b.ID, false); err != nil {
			return 0, fmt.Errorf("branch %s: %w", b.Name, err)
		}
		refs.Add(b.Name, b.ID)
		if b.Tracking == "" {
			continue
		}
		slog.Debug("adding tracking branch", slog.String("name", b.Tracking))
		if b.TrackingID != b.ID {
			if err := builder.Add(b.TrackingID, false); err != nil {
				return 0, fmt.Errorf("branch %s: %w", b.Tracking, err)
			}
		}
		refs.Add(b.Tracking, b.TrackingID)
	}

	for _, name := range a.cfg.ExtraRefs {
		id, err := a.svc.ResolveRef(name)
		if err != nil {
			fmt.Fprintf(w, "Unable to find %s ref. Check %s.\n", name, config.Path(a.svc.GitDir()))
			continue
		}
		refs.Add(name, id)
		if err := builder.Add(id, false); err != nil {
			return 0, fmt.Errorf("extra ref %s: %w", name, err)
		}
	}

	nodes := smartlog.NewTreeNodePrinter(refs, a.fetchReviews(), a.colorize)
	if err := smartlog.NewTreePrinter(nodes).Print(w, builder.Root()); err != nil {
		return 0, err
	}
	return builder.SkipCount(), nil
}
