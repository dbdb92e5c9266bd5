package smartlog

import (
	"fmt"
	"io"
	"strings"

	"github.com/thiagokokada/git-smartlog/internal/review"
)

const summaryWidth = 72

const (
	markerHead  = "@"
	markerOther = "o"

	connectorMid  = "├─"
	connectorLast = "└─"
	prefixMid     = "│ "
	prefixLast    = "  "
)

const (
	ansiReset  = "\x1b[0m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiCyan   = "\x1b[36m"
)

// TreeNodePrinter composes the annotation line for a single tree node: the
// position marker, short commit id, summary, reference labels and review
// status. It never fails: missing annotations are simply left out.
type TreeNodePrinter struct {
	refs     *RefMap
	reviews  map[string]review.Status
	colorize bool
}

func NewTreeNodePrinter(refs *RefMap, reviews map[string]review.Status, colorize bool) *TreeNodePrinter {
	return &TreeNodePrinter{refs: refs, reviews: reviews, colorize: colorize}
}

// Line renders a node's annotation line, without any tree connectors.
func (p *TreeNodePrinter) Line(n *TreeNode) string {
	var b strings.Builder
	marker := markerOther
	if p.refs.IsHead(n.Commit.ID) {
		marker = markerHead
	}
	b.WriteString(p.color(ansiYellow, fmt.Sprintf("%s %s", marker, shortID(n.Commit.ID))))
	b.WriteByte(' ')
	b.WriteString(truncateSummary(n.Commit.Summary))

	labels := p.refs.Labels(n.Commit.ID)
	if len(labels) > 0 {
		decorated := make([]string, len(labels))
		for i, label := range labels {
			if p.refs.IsTrunk(label) {
				decorated[i] = p.color(ansiCyan, label)
			} else {
				decorated[i] = p.color(ansiGreen, label)
			}
		}
		b.WriteString(" (" + strings.Join(decorated, ", ") + ")")
	}
	if st, ok := p.reviewFor(labels); ok {
		b.WriteByte(' ')
		b.WriteString(p.color(ansiCyan, reviewSummary(st)))
	}
	return b.String()
}

// reviewFor returns the review status attached to the first label that has
// one. Review data is keyed by full tracking branch name.
func (p *TreeNodePrinter) reviewFor(labels []string) (review.Status, bool) {
	for _, label := range labels {
		if st, ok := p.reviews[label]; ok {
			return st, true
		}
	}
	return review.Status{}, false
}

func (p *TreeNodePrinter) color(code, s string) string {
	if !p.colorize || s == "" {
		return s
	}
	return code + s + ansiReset
}

func reviewSummary(st review.Status) string {
	parts := []string{fmt.Sprintf("#%s %s", st.ID, st.State)}
	if code := decisionCode(st.Decision); code != "" {
		parts = append(parts, code)
	}
	if n := st.FailedChecks(); n > 0 {
		parts = append(parts, fmt.Sprintf("%dx failed", n))
	}
	if n := st.RunningChecks(); n > 0 {
		parts = append(parts, fmt.Sprintf("%dx running", n))
	}
	if st.URL != "" {
		parts = append(parts, st.URL)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func decisionCode(d review.Decision) string {
	switch d {
	case review.DecisionApproved:
		return "ok"
	case review.DecisionChangesRequested:
		return "changes"
	case review.DecisionReviewRequired:
		return "review"
	default:
		return ""
	}
}

func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

func truncateSummary(summary string) string {
	line := strings.SplitN(strings.TrimSpace(summary), "\n", 2)[0]
	runes := []rune(line)
	if len(runes) > summaryWidth {
		return string(runes[:summaryWidth-3]) + "..."
	}
	return line
}

// TreePrinter walks the tree depth first and draws the connectors. Children
// print in builder order; vertical bars only continue while further siblings
// remain below.
type TreePrinter struct {
	nodes *TreeNodePrinter
}

func NewTreePrinter(nodes *TreeNodePrinter) *TreePrinter {
	return &TreePrinter{nodes: nodes}
}

func (p *TreePrinter) Print(w io.Writer, root *TreeNode) error {
	return p.printNode(w, root, "", "")
}

func (p *TreePrinter) printNode(w io.Writer, n *TreeNode, connector, continuation string) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", connector, p.nodes.Line(n)); err != nil {
		return err
	}
	for i, child := range n.Children {
		childConnector := continuation + connectorMid
		childContinuation := continuation + prefixMid
		if i == len(n.Children)-1 {
			childConnector = continuation + connectorLast
			childContinuation = continuation + prefixLast
		}
		if err := p.printNode(w, child, childConnector, childContinuation); err != nil {
			return err
		}
	}
	return nil
}
