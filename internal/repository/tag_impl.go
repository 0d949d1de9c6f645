package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/compozy/releasetag/internal/domain"
	"github.com/compozy/releasetag/internal/service"
)

const (
	// DefaultOriginRemote is the private remote, pushed first
	DefaultOriginRemote = "origin"
	// DefaultPublicRemote is the public mirror, pushed second
	DefaultPublicRemote = "public"
)

// shellSafe matches words that need no quoting in a POSIX shell.
var shellSafe = regexp.MustCompile(`^[a-zA-Z0-9@%+=:,./_-]+$`)

// tagRepository is the implementation of the TagRepository interface. It keeps
// no record of the tags it created; git is queried when that is needed.
type tagRepository struct {
	session      domain.Session
	shell        service.ShellService
	log          func(string)
	originRemote string
	publicRemote string
}

// TagOption configures a TagRepository
type TagOption func(*tagRepository)

// WithRemotes overrides the private and public remote names.
func WithRemotes(origin, public string) TagOption {
	return func(r *tagRepository) {
		if origin != "" {
			r.originRemote = origin
		}
		if public != "" {
			r.publicRemote = public
		}
	}
}

// NewTagRepository creates a new TagRepository for one release session.
func NewTagRepository(
	session domain.Session,
	shell service.ShellService,
	log func(string),
	opts ...TagOption,
) TagRepository {
	if log == nil {
		log = func(string) {}
	}
	r := &tagRepository{
		session:      session,
		shell:        shell,
		log:          log,
		originRemote: DefaultOriginRemote,
		publicRemote: DefaultPublicRemote,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TagReleaseVersion tags the session commit with the branch name.
func (r *tagRepository) TagReleaseVersion(ctx context.Context) error {
	return r.createTag(ctx, domain.ReleaseTagName(r.session.Branch))
}

// TagBomVersion tags the session commit with bom@<version>.
func (r *tagRepository) TagBomVersion(ctx context.Context, version string) error {
	return r.createTag(ctx, domain.BomTagName(version))
}

// TagProductVersion tags the session commit with <product>@<version>.
func (r *tagRepository) TagProductVersion(ctx context.Context, product, version string) error {
	return r.createTag(ctx, domain.ProductTagName(product, version))
}

// PushCreatedTags pushes all local tags to the private remote, then to the
// public one. The public push is skipped when the private push fails.
func (r *tagRepository) PushCreatedTags(ctx context.Context) error {
	if err := r.PushTags(ctx, r.originRemote); err != nil {
		return err
	}
	if err := r.PushTags(ctx, r.publicRemote); err != nil {
		return &domain.PartialPushFailure{
			PushedRemote: r.originRemote,
			FailedRemote: r.publicRemote,
			Err:          err,
		}
	}
	return nil
}

// PushTags pushes all local tags to a single remote.
func (r *tagRepository) PushTags(ctx context.Context, remote string) error {
	commandLine := fmt.Sprintf("git push %s --tags", quote(remote))
	r.log(commandLine)
	return r.shell.Execute(ctx, commandLine, r.forward)
}

// TagsAt lists the tags pointing at rev, straight from git.
func (r *tagRepository) TagsAt(ctx context.Context, rev string) ([]string, error) {
	lines, err := r.shell.Run(ctx, fmt.Sprintf("git tag --points-at %s", quote(rev)))
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Remotes returns the remotes in push order.
func (r *tagRepository) Remotes() []string {
	return []string{r.originRemote, r.publicRemote}
}

func (r *tagRepository) createTag(ctx context.Context, name string) error {
	commandLine := fmt.Sprintf("git tag %s %s", quote(name), quote(r.session.Commit))
	if err := r.shell.Execute(ctx, commandLine, r.forward); err != nil {
		return err
	}
	r.log(fmt.Sprintf("Tagged %s at %s", name, r.session.ShortCommit()))
	return nil
}

func (r *tagRepository) forward(lines []string) {
	for _, line := range lines {
		r.log(line)
	}
}

// quote single-quotes a word for the shell unless it is already safe.
func quote(word string) string {
	if shellSafe.MatchString(word) {
		return word
	}
	return "'" + strings.ReplaceAll(word, "'", `'\''`) + "'"
}
