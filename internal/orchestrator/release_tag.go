package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/repository"
	"github.com/compozy/releasetag/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TagRepositoryFactory builds the tag repository for a captured session.
type TagRepositoryFactory func(session domain.Session, dryRun bool) repository.TagRepository

// ReleaseTagConfig contains configuration for the tag workflow.
type ReleaseTagConfig struct {
	ManifestPath string
	Bom          string
	Products     []string // name@version pairs added to the manifest
	Push         bool
	DryRun       bool // Print commands instead of running them
	CIOutput     bool
}

// PushRemainingConfig contains configuration for finishing a partial push.
type PushRemainingConfig struct {
	SessionID string // Uses the latest session if empty
	CIOutput  bool
}

// VerifyConfig contains configuration for checking the public mirror.
type VerifyConfig struct {
	ManifestPath string
	Bom          string
	Products     []string
	CIOutput     bool
}

// ReleaseTagOrchestrator orchestrates a release tagging session.
type ReleaseTagOrchestrator struct {
	gitRepo    repository.GitRepository
	fsRepo     repository.FileSystemRepository
	stateRepo  repository.StateRepository
	mirrorRepo repository.MirrorRepository
	newTagRepo TagRepositoryFactory
	log        *zap.Logger
	out        io.Writer
}

// NewReleaseTagOrchestrator creates a new release tag orchestrator.
func NewReleaseTagOrchestrator(
	gitRepo repository.GitRepository,
	fsRepo repository.FileSystemRepository,
	stateRepo repository.StateRepository,
	mirrorRepo repository.MirrorRepository,
	newTagRepo TagRepositoryFactory,
	log *zap.Logger,
) *ReleaseTagOrchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReleaseTagOrchestrator{
		gitRepo:    gitRepo,
		fsRepo:     fsRepo,
		stateRepo:  stateRepo,
		mirrorRepo: mirrorRepo,
		newTagRepo: newTagRepo,
		log:        log,
		out:        os.Stdout,
	}
}

// SetOutput redirects status and CI output.
func (o *ReleaseTagOrchestrator) SetOutput(w io.Writer) {
	o.out = w
}

// Execute runs the tagging session: tags first, then the optional push.
func (o *ReleaseTagOrchestrator) Execute(ctx context.Context, cfg ReleaseTagConfig) error {
	manifest, err := o.loadManifest(cfg.ManifestPath, cfg.Bom, cfg.Products)
	if err != nil {
		return err
	}
	session, err := o.captureSession(ctx)
	if err != nil {
		return err
	}
	tagRepo := o.newTagRepo(session, cfg.DryRun)
	if cfg.Push && !cfg.DryRun {
		if err := o.checkRemotes(ctx, tagRepo.Remotes()); err != nil {
			return err
		}
	}
	state := domain.NewSessionState(uuid.New().String(), session)
	log := o.log.With(zap.String("session_id", state.SessionID), zap.String("branch", session.Branch))
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeySessionID, state.SessionID)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyBranch, session.Branch)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyCommit, session.Commit)
	state.MarkRunning()
	o.saveState(ctx, cfg.DryRun, state)
	if err := o.createTags(ctx, cfg.DryRun, tagRepo, session, manifest, state); err != nil {
		state.MarkFailed(domain.SessionStatusFailed, err)
		o.saveState(ctx, cfg.DryRun, state)
		o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyStatus, state.Status)
		return err
	}
	state.MarkTagged()
	o.saveState(ctx, cfg.DryRun, state)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyTags, strings.Join(state.Tags, ","))
	log.Info("created tags", zap.Strings("tags", state.Tags))
	if !cfg.Push {
		o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyStatus, state.Status)
		o.printStatus(cfg.CIOutput, fmt.Sprintf("Created %d tags at %s (not pushed)", len(state.Tags), session))
		return nil
	}
	err = o.pushTags(ctx, tagRepo, state)
	o.saveState(ctx, cfg.DryRun, state)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyStatus, state.Status)
	if err != nil {
		var partial *domain.PartialPushFailure
		if errors.As(err, &partial) {
			log.Error("release is only visible on some remotes",
				zap.String("pushed", partial.PushedRemote),
				zap.String("failed", partial.FailedRemote))
			o.printStatus(cfg.CIOutput, fmt.Sprintf(
				"Tags are on %s but not on %s. Run: push-remaining --session-id %s",
				partial.PushedRemote, partial.FailedRemote, state.SessionID))
		}
		return fmt.Errorf("failed to push tags: %w", err)
	}
	o.printStatus(cfg.CIOutput, fmt.Sprintf("Pushed %d tags at %s to %s",
		len(state.Tags), session, strings.Join(tagRepo.Remotes(), " and ")))
	return nil
}

// PushRemaining pushes the tags of a partially pushed session to the remotes
// that did not receive them.
func (o *ReleaseTagOrchestrator) PushRemaining(ctx context.Context, cfg PushRemainingConfig) error {
	state, err := o.loadState(ctx, cfg.SessionID)
	if err != nil {
		return err
	}
	if state.Status != domain.SessionStatusPushFailedPartial {
		return fmt.Errorf("session %s is %s, only %s sessions can be resumed",
			state.SessionID, state.Status, domain.SessionStatusPushFailedPartial)
	}
	if err := o.checkLocalTags(ctx, state); err != nil {
		return err
	}
	tagRepo := o.newTagRepo(state.Session(), false)
	pending := state.PendingRemotes(tagRepo.Remotes()...)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeySessionID, state.SessionID)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyPending, strings.Join(pending, ","))
	if err := o.checkRemotes(ctx, pending); err != nil {
		return err
	}
	for _, remote := range pending {
		err := tagRepo.PushTags(ctx, remote)
		state.RecordPush(remote, err)
		if err != nil {
			state.MarkFailed(domain.SessionStatusPushFailedPartial, err)
			o.saveState(ctx, false, state)
			return fmt.Errorf("failed to push tags to %s: %w", remote, err)
		}
	}
	state.MarkPushed()
	o.saveState(ctx, false, state)
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyStatus, state.Status)
	o.printStatus(cfg.CIOutput, fmt.Sprintf("Session %s pushed to %s", state.SessionID, strings.Join(pending, ", ")))
	return nil
}

// Verify checks that the tags of the current session are visible on the public mirror.
func (o *ReleaseTagOrchestrator) Verify(ctx context.Context, cfg VerifyConfig) error {
	manifest, err := o.loadManifest(cfg.ManifestPath, cfg.Bom, cfg.Products)
	if err != nil {
		return err
	}
	session, err := o.captureSession(ctx)
	if err != nil {
		return err
	}
	tags := manifest.TagNames(session)
	local, err := o.gitRepo.TagsAt(ctx, session.Commit)
	if err != nil {
		return fmt.Errorf("failed to list local tags: %w", err)
	}
	if missingLocal := missingFrom(tags, local); len(missingLocal) > 0 {
		o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyMissingLocal, strings.Join(missingLocal, ","))
		return fmt.Errorf("tags not found at %s: %s", session, strings.Join(missingLocal, ", "))
	}
	uc := &usecase.VerifyTagsUseCase{Mirror: o.mirrorRepo}
	missing, err := uc.Execute(ctx, tags)
	if err != nil {
		return err
	}
	o.printCIOutput(cfg.CIOutput, "%s=%s\n", CIKeyMissing, strings.Join(missing, ","))
	if len(missing) > 0 {
		return fmt.Errorf("tags missing from %s: %s", o.mirrorRepo.Slug(), strings.Join(missing, ", "))
	}
	o.printStatus(cfg.CIOutput, fmt.Sprintf("All tags for %s are visible on %s", session, o.mirrorRepo.Slug()))
	return nil
}

func (o *ReleaseTagOrchestrator) loadManifest(path, bom string, products []string) (*domain.Manifest, error) {
	uc := &usecase.LoadManifestUseCase{FsRepo: o.fsRepo}
	manifest, err := uc.Execute(path, bom, products)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	return manifest, nil
}

func (o *ReleaseTagOrchestrator) captureSession(ctx context.Context) (domain.Session, error) {
	uc := &usecase.CaptureSessionUseCase{GitRepo: o.gitRepo}
	session, err := uc.Execute(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("failed to capture session: %w", err)
	}
	if err := ValidateBranchName(session.Branch); err != nil {
		return domain.Session{}, fmt.Errorf("branch cannot be used as release tag: %w", err)
	}
	if err := ValidateCommit(session.Commit); err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (o *ReleaseTagOrchestrator) checkRemotes(ctx context.Context, want []string) error {
	configured, err := o.gitRepo.RemoteNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list remotes: %w", err)
	}
	return ValidateRemotesConfigured(configured, want)
}

// checkLocalTags makes sure the tags a session created still exist before pushing them again.
func (o *ReleaseTagOrchestrator) checkLocalTags(ctx context.Context, state *domain.SessionState) error {
	for _, tag := range state.Tags {
		exists, err := o.gitRepo.TagExists(ctx, tag)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("tag %s of session %s no longer exists locally", tag, state.SessionID)
		}
	}
	return nil
}

func missingFrom(want, have []string) []string {
	present := make(map[string]bool, len(have))
	for _, name := range have {
		present[name] = true
	}
	var missing []string
	for _, name := range want {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func (o *ReleaseTagOrchestrator) createTags(
	ctx context.Context,
	dryRun bool,
	tagRepo repository.TagRepository,
	session domain.Session,
	manifest *domain.Manifest,
	state *domain.SessionState,
) error {
	uc := &usecase.TagReleaseUseCase{
		TagRepo: tagRepo,
		OnTag: func(name string) {
			state.RecordTag(name)
			o.saveState(ctx, dryRun, state)
		},
	}
	return uc.Execute(ctx, session, manifest)
}

// pushTags pushes to both remotes and records the outcome of each in state.
func (o *ReleaseTagOrchestrator) pushTags(
	ctx context.Context,
	tagRepo repository.TagRepository,
	state *domain.SessionState,
) error {
	remotes := tagRepo.Remotes()
	err := tagRepo.PushCreatedTags(ctx)
	var partial *domain.PartialPushFailure
	switch {
	case err == nil:
		for _, remote := range remotes {
			state.RecordPush(remote, nil)
		}
		state.MarkPushed()
	case errors.As(err, &partial):
		state.RecordPush(partial.PushedRemote, nil)
		state.RecordPush(partial.FailedRemote, partial.Err)
		state.MarkFailed(domain.SessionStatusPushFailedPartial, err)
	default:
		state.RecordPush(remotes[0], err)
		state.MarkFailed(domain.SessionStatusPushFailedNone, err)
	}
	return err
}

func (o *ReleaseTagOrchestrator) loadState(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	var (
		state *domain.SessionState
		err   error
	)
	if sessionID == "" {
		state, err = o.stateRepo.LoadLatest(ctx)
	} else {
		state, err = o.stateRepo.Load(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	return state, nil
}

// saveState persists the journal; failures are logged, not returned, since the
// journal is an audit record and git holds the real state.
func (o *ReleaseTagOrchestrator) saveState(ctx context.Context, dryRun bool, state *domain.SessionState) {
	if dryRun {
		return
	}
	if err := o.stateRepo.Save(ctx, state); err != nil {
		o.log.Warn("failed to save session state", zap.String("session_id", state.SessionID), zap.Error(err))
	}
}

// printCIOutput prints output in CI format if enabled
func (o *ReleaseTagOrchestrator) printCIOutput(ciOutput bool, format string, args ...any) {
	if ciOutput {
		fmt.Fprintf(o.out, format, args...)
	}
}

// printStatus prints status messages when not in CI mode
func (o *ReleaseTagOrchestrator) printStatus(ciOutput bool, message string) {
	if !ciOutput {
		fmt.Fprintln(o.out, message)
	}
}
