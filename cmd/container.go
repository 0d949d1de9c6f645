package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/compozy/releasetag/internal/config"
	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/logger"
	"github.com/compozy/releasetag/internal/orchestrator"
	"github.com/compozy/releasetag/internal/repository"
	"github.com/compozy/releasetag/internal/service"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg *config.Config
	log *zap.Logger

	fsRepo     repository.FileSystemRepository
	gitRepo    repository.GitRepository
	stateRepo  repository.StateRepository
	mirrorRepo repository.MirrorRepository
	shellSvc   service.ShellService

	// dryRunShell is set once a dry-run tag repository was built
	dryRunShell *service.DryRunShellService
}

// newContainer creates a new container with all the dependencies.
func newContainer() (*container, error) {
	configDir := rootOpts.dir
	if configDir == "" {
		configDir = "."
	}
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	if rootOpts.dir != "" {
		cfg.WorkDir = rootOpts.dir
	}
	if rootOpts.logLevel != "" {
		cfg.LogLevel = rootOpts.logLevel
	}
	if rootOpts.logJSON {
		cfg.LogJSON = true
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.JSON = cfg.LogJSON
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	gitRepo, err := repository.NewGitRepository(cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	shellSvc, err := service.NewShellService(cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	stateDir := cfg.StateDir
	if !filepath.IsAbs(stateDir) {
		stateDir = filepath.Join(cfg.WorkDir, stateDir)
	}
	stateRepo := repository.NewJSONStateRepository(fsRepo, stateDir)

	// Mirror verification is optional - only talk to GitHub if a token is provided
	mirrorRepo := repository.NewNoopMirrorRepository(cfg.GithubOwner, cfg.GithubRepo)
	if cfg.GithubToken != "" {
		mirrorRepo, err = repository.NewMirrorRepository(cfg.GithubToken, cfg.GithubOwner, cfg.GithubRepo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mirror repository: %w", err)
		}
	}

	return &container{
		cfg:        cfg,
		log:        log,
		fsRepo:     fsRepo,
		gitRepo:    gitRepo,
		stateRepo:  stateRepo,
		mirrorRepo: mirrorRepo,
		shellSvc:   shellSvc,
	}, nil
}

// newTagRepository binds a tag repository to a session, printing commands instead
// of running them on dry runs.
func (c *container) newTagRepository(session domain.Session, dryRun bool) repository.TagRepository {
	shell := c.shellSvc
	if dryRun {
		c.dryRunShell = service.NewDryRunShellService(c.shellSvc.WorkDir())
		shell = c.dryRunShell
	}
	return repository.NewTagRepository(
		session,
		shell,
		logger.Sink(c.log.With(zap.String("session", session.String()))),
		repository.WithRemotes(c.cfg.OriginRemote, c.cfg.PublicRemote),
	)
}

func (c *container) orchestrator() *orchestrator.ReleaseTagOrchestrator {
	return orchestrator.NewReleaseTagOrchestrator(
		c.gitRepo,
		c.fsRepo,
		c.stateRepo,
		c.mirrorRepo,
		c.newTagRepository,
		c.log,
	)
}

// printDryRunCommands lists the commands a dry run would have executed.
func (c *container) printDryRunCommands(w io.Writer) {
	if c.dryRunShell == nil {
		return
	}
	fmt.Fprintln(w, "Dry run, nothing was executed. Commands:")
	for _, line := range c.dryRunShell.Commands() {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// withContainer builds the container, runs fn with the logger attached to the
// command context and flushes the logger.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *container) error) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer func() { _ = c.log.Sync() }()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(logger.ContextWithLogger(ctx, c.log), c)
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	rootCmd.AddCommand(
		newTagCmd(),
		newPushRemainingCmd(),
		newVerifyCmd(),
		newVersionCmd(),
	)
	return nil
}
