package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// remotePrefix matches how tracking branches are registered in the RefMap,
// so review statuses can be looked up by label.
const remotePrefix = "origin/"

// Fetch asks the gh CLI for the status of the user's pull requests, keyed by
// full tracking branch name. Any failure yields an empty map.
func Fetch() map[string]Status {
	out, err := runGh("pr", "status", "--json",
		"number,state,reviewDecision,title,headRefName,statusCheckRollup,url")
	if err != nil {
		slog.Debug("gh pr status unavailable", slog.Any("error", err))
		return map[string]Status{}
	}
	statuses, err := parseStatus(out)
	if err != nil {
		slog.Debug("gh pr status parse", slog.Any("error", err))
		return map[string]Status{}
	}
	return statuses
}

func runGh(args ...string) ([]byte, error) {
	cmd := exec.Command("gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("gh %s: %v: %s", args[0], err, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("gh %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

type ghCheckRollup struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
}

type ghPullRequest struct {
	Number            int             `json:"number"`
	State             string          `json:"state"`
	ReviewDecision    string          `json:"reviewDecision"`
	Title             string          `json:"title"`
	HeadRefName       string          `json:"headRefName"`
	StatusCheckRollup []ghCheckRollup `json:"statusCheckRollup"`
	URL               string          `json:"url"`
}

type ghStatus struct {
	CreatedBy []ghPullRequest `json:"createdBy"`
}

func parseStatus(raw []byte) (map[string]Status, error) {
	var payload ghStatus
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode gh pr status: %w", err)
	}
	statuses := make(map[string]Status, len(payload.CreatedBy))
	for _, pr := range payload.CreatedBy {
		checks := make(map[string]CheckOutcome, len(pr.StatusCheckRollup))
		for _, check := range pr.StatusCheckRollup {
			checks[check.Name] = checkOutcome(check)
		}
		branch := remotePrefix + pr.HeadRefName
		statuses[branch] = Status{
			ID:       strconv.Itoa(pr.Number),
			Branch:   branch,
			State:    State(pr.State),
			Decision: Decision(pr.ReviewDecision),
			Checks:   checks,
			Title:    pr.Title,
			URL:      pr.URL,
		}
	}
	return statuses, nil
}

func checkOutcome(check ghCheckRollup) CheckOutcome {
	if check.Status != "COMPLETED" {
		return CheckRunning
	}
	switch check.Conclusion {
	case "SUCCESS":
		return CheckPassed
	case "SKIPPED":
		return CheckSkipped
	default:
		return CheckFailed
	}
}
