// Package review retrieves code-review status for the user's branches from
// GitHub, via the gh CLI. Review data is best effort: when gh is missing or
// fails, the smartlog simply renders without it.
package review

// State of a pull request.
type State string

const (
	StateOpen   State = "OPEN"
	StateMerged State = "MERGED"
	StateClosed State = "CLOSED"
)

// Decision is the aggregate review decision for a pull request. The zero
// value means no decision has been recorded.
type Decision string

const (
	DecisionNone             Decision = ""
	DecisionApproved         Decision = "APPROVED"
	DecisionChangesRequested Decision = "CHANGES_REQUESTED"
	DecisionReviewRequired   Decision = "REVIEW_REQUIRED"
)

// CheckOutcome is the state of a single CI check on a pull request.
type CheckOutcome string

const (
	CheckPassed  CheckOutcome = "PASSED"
	CheckSkipped CheckOutcome = "SKIPPED"
	CheckFailed  CheckOutcome = "FAILED"
	CheckRunning CheckOutcome = "RUNNING"
)

// Status is the review metadata for one branch's pull request.
type Status struct {
	ID       string
	Branch   string // full tracking name, e.g. origin/feature
	State    State
	Decision Decision
	Checks   map[string]CheckOutcome
	Title    string
	URL      string
}

// FailedChecks counts checks that completed unsuccessfully.
func (s Status) FailedChecks() int {
	return s.countChecks(CheckFailed)
}

// RunningChecks counts checks that have not completed yet.
func (s Status) RunningChecks() int {
	return s.countChecks(CheckRunning)
}

func (s Status) countChecks(want CheckOutcome) int {
	n := 0
	for _, outcome := range s.Checks {
		if outcome == want {
			n++
		}
	}
	return n
}
