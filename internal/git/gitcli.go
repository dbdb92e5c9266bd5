package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

func (s *Service) runGitCommand(args ...string) (string, error) {
	if s.path == "" {
		return "", fmt.Errorf("repository root not set")
	}
	cmd := exec.Command("git", append([]string{"-C", s.path}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}
