package orchestrator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// branchNameRegex matches branch names that can double as tag names
	branchNameRegex = regexp.MustCompile(`^[a-zA-Z0-9._/@-]+$`)
	// commitRegex matches full or abbreviated commit hashes
	commitRegex = regexp.MustCompile(`^[0-9a-f]{4,64}$`)
)

// ValidateBranchName validates a branch name that will be used as a release tag.
func ValidateBranchName(branch string) error {
	if branch == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if len(branch) > 255 {
		return fmt.Errorf("branch name too long: %d characters (max: 255)", len(branch))
	}
	// Check for invalid patterns
	if strings.HasPrefix(branch, "/") || strings.HasSuffix(branch, "/") {
		return fmt.Errorf("branch name cannot start or end with slash: %s", branch)
	}
	if strings.HasPrefix(branch, "-") {
		return fmt.Errorf("branch name cannot start with a dash: %s", branch)
	}
	if strings.Contains(branch, "..") {
		return fmt.Errorf("branch name cannot contain consecutive dots: %s", branch)
	}
	if strings.HasSuffix(branch, ".lock") {
		return fmt.Errorf("branch name cannot end with .lock: %s", branch)
	}
	if !branchNameRegex.MatchString(branch) {
		return fmt.Errorf("invalid branch name format: %s", branch)
	}
	return nil
}

// ValidateCommit validates a commit hash.
func ValidateCommit(commit string) error {
	if !commitRegex.MatchString(commit) {
		return fmt.Errorf("invalid commit hash: %q", commit)
	}
	return nil
}

// ValidateRemotesConfigured checks that every remote in want is configured.
func ValidateRemotesConfigured(configured, want []string) error {
	known := make(map[string]bool, len(configured))
	for _, name := range configured {
		known[name] = true
	}
	var missing []string
	for _, name := range want {
		if !known[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing git remotes: %s", strings.Join(missing, ", "))
	}
	return nil
}
