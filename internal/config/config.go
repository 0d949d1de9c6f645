package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/viper"
)

var (
	remoteNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	logLevels       = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

type Config struct {
	WorkDir      string `mapstructure:"work_dir"`
	OriginRemote string `mapstructure:"origin_remote"`
	PublicRemote string `mapstructure:"public_remote"`
	StateDir     string `mapstructure:"state_dir"`
	LogLevel     string `mapstructure:"log_level"`
	LogJSON      bool   `mapstructure:"log_json"`
	GithubToken  string `mapstructure:"github_token"`
	GithubOwner  string `mapstructure:"github_owner"`
	GithubRepo   string `mapstructure:"github_repo"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		WorkDir:      ".",
		OriginRemote: "origin",
		PublicRemote: "public",
		StateDir:     ".release-state",
		LogLevel:     "info",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir cannot be empty")
	}
	if err := ValidateRemoteName(c.OriginRemote); err != nil {
		return fmt.Errorf("invalid origin_remote: %w", err)
	}
	if err := ValidateRemoteName(c.PublicRemote); err != nil {
		return fmt.Errorf("invalid public_remote: %w", err)
	}
	if c.OriginRemote == c.PublicRemote {
		return fmt.Errorf("origin_remote and public_remote must differ: both are %s", c.OriginRemote)
	}
	if c.StateDir == "" {
		return fmt.Errorf("state_dir cannot be empty")
	}
	// Check for path traversal in state directory
	if strings.Contains(c.StateDir, "..") {
		return fmt.Errorf("state_dir contains invalid path traversal")
	}
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	// GitHub token is optional - only validate if provided
	if c.GithubToken != "" {
		if err := ValidateGitHubToken(c.GithubToken); err != nil {
			return fmt.Errorf("invalid github_token: %w", err)
		}
		if err := ValidateGitHubOwnerRepo(c.GithubOwner, c.GithubRepo); err != nil {
			return fmt.Errorf("invalid github configuration: %w", err)
		}
	}
	return nil
}

// ValidateForMirrorVerification validates that the public mirror can be queried
func (c *Config) ValidateForMirrorVerification() error {
	if c.GithubToken == "" {
		return fmt.Errorf("github_token is required to verify the public mirror")
	}
	return c.Validate()
}

// ValidateRemoteName validates a git remote name
func ValidateRemoteName(name string) error {
	if name == "" {
		return fmt.Errorf("remote name cannot be empty")
	}
	if !remoteNameRegex.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid remote name: %s", name)
	}
	return nil
}

// ValidateGitHubToken validates GitHub token format (exported for reuse)
func ValidateGitHubToken(token string) error {
	token = strings.TrimSpace(token)
	if len(token) < 40 {
		return fmt.Errorf("token too short: expected at least 40 characters")
	}
	// Validate token format patterns
	classicPAT := regexp.MustCompile(`^[a-fA-F0-9]{40}$`)
	fineGrainedPAT := regexp.MustCompile(`^github_pat_[a-zA-Z0-9_]{82}$`)
	appToken := regexp.MustCompile(`^ghs_[a-zA-Z0-9]{36}$`)
	oauthToken := regexp.MustCompile(`^gho_[a-zA-Z0-9]{36}$`)
	if !classicPAT.MatchString(token) &&
		!fineGrainedPAT.MatchString(token) &&
		!appToken.MatchString(token) &&
		!oauthToken.MatchString(token) {
		return fmt.Errorf("invalid token format")
	}
	return nil
}

// ValidateGitHubOwnerRepo validates GitHub owner and repository names (exported for reuse)
func ValidateGitHubOwnerRepo(owner, repo string) error {
	if owner == "" {
		return fmt.Errorf("owner cannot be empty")
	}
	if repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	validName := regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9\-_.]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)
	if !validName.MatchString(owner) {
		return fmt.Errorf("invalid owner format: %s", owner)
	}
	if len(owner) > 39 {
		return fmt.Errorf("owner too long: maximum 39 characters")
	}
	if !validName.MatchString(repo) {
		return fmt.Errorf("invalid repository format: %s", repo)
	}
	if len(repo) > 100 {
		return fmt.Errorf("repository too long: maximum 100 characters")
	}
	return nil
}

// LoadConfig reads .releasetag.yaml from configDir plus RELEASETAG_* environment variables.
func LoadConfig(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".releasetag")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	// Configure environment variables
	v.SetEnvPrefix("RELEASETAG")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	if err := v.BindEnv("github_token", "RELEASETAG_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind github_token env: %w", err)
	}
	if err := v.BindEnv("github_owner", "RELEASETAG_GITHUB_OWNER", "GITHUB_OWNER"); err != nil {
		return nil, fmt.Errorf("failed to bind github_owner env: %w", err)
	}
	if err := v.BindEnv("github_repo", "RELEASETAG_GITHUB_REPO", "GITHUB_REPO"); err != nil {
		return nil, fmt.Errorf("failed to bind github_repo env: %w", err)
	}
	defaults := DefaultConfig()
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("origin_remote", defaults.OriginRemote)
	v.SetDefault("public_remote", defaults.PublicRemote)
	v.SetDefault("state_dir", defaults.StateDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_json", defaults.LogJSON)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := populateRepositoryDefaults(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// populateRepositoryDefaults fills the public mirror slug from GITHUB_REPOSITORY
// or, failing that, from the URL of the public remote.
func populateRepositoryDefaults(cfg *Config) error {
	if cfg.GithubOwner != "" && cfg.GithubRepo != "" {
		return nil
	}
	owner := os.Getenv("GITHUB_REPOSITORY_OWNER")
	repo := os.Getenv("GITHUB_REPOSITORY_NAME")
	if slug := os.Getenv("GITHUB_REPOSITORY"); slug != "" {
		if idx := strings.Index(slug, "/"); idx > 0 && idx < len(slug)-1 {
			if owner == "" {
				owner = slug[:idx]
			}
			if repo == "" {
				repo = slug[idx+1:]
			}
		}
	}
	if owner == "" || repo == "" {
		remoteOwner, remoteRepo, err := slugFromRemote(cfg.WorkDir, remoteOrDefault(cfg.PublicRemote))
		if err != nil {
			return err
		}
		if owner == "" {
			owner = remoteOwner
		}
		if repo == "" {
			repo = remoteRepo
		}
	}
	if cfg.GithubOwner == "" {
		cfg.GithubOwner = owner
	}
	if cfg.GithubRepo == "" {
		cfg.GithubRepo = repo
	}
	return nil
}

func remoteOrDefault(name string) string {
	if name == "" {
		return DefaultConfig().PublicRemote
	}
	return name
}

// slugFromRemote returns owner/repo parsed from a remote URL. A missing
// repository or remote is not an error.
func slugFromRemote(dir, remoteName string) (string, string, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", nil
	}
	remote, err := repo.Remote(remoteName)
	if err != nil {
		remote, err = repo.Remote("origin")
		if err != nil {
			return "", "", nil
		}
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", nil
	}
	owner, name, err := parseGitRemoteURL(urls[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to parse remote %s: %w", remoteName, err)
	}
	return owner, name, nil
}

// parseGitRemoteURL extracts owner and repository from https, scp-style ssh
// and plain path remote URLs.
func parseGitRemoteURL(raw string) (string, string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("empty remote url")
	}
	trimmed = strings.TrimSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
	} else if at := strings.Index(trimmed, "@"); at >= 0 {
		if colon := strings.Index(trimmed[at:], ":"); colon >= 0 {
			trimmed = trimmed[at+colon+1:]
		}
	}
	parts := strings.Split(filepath.ToSlash(trimmed), "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("cannot determine owner and repository from %q", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
