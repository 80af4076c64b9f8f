package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/jcgregorio/logger"
)

// SourceKind says where a program's text comes from.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceInline
	SourceGit
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceInline:
		return "inline"
	case SourceGit:
		return "git"
	default:
		return fmt.Sprintf("unknown_source_%d", int(k))
	}
}

// Source locates one program.
type Source struct {
	Kind SourceKind
	// Name labels the program in output; it defaults to Describe().
	Name string
	// Path is the file to read, or the file inside the repository for git
	// sources.
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
	Inline string
}

// FileSource reads a program from disk.
func FileSource(path string) Source {
	return Source{Kind: SourceFile, Name: path, Path: path}
}

// InlineSource wraps literal program text.
func InlineSource(name, text string) Source {
	return Source{Kind: SourceInline, Name: name, Inline: text}
}

// Describe renders the source for log lines and result headers.
func (s Source) Describe() string {
	switch s.Kind {
	case SourceInline:
		if s.Name != "" {
			return s.Name
		}
		return "<inline>"
	case SourceGit:
		ref, _ := s.refName()
		return fmt.Sprintf("%s@%s:%s", s.Git, ref, s.Path)
	default:
		return s.Path
	}
}

func (s Source) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Describe()
}

func (s Source) refName() (string, error) {
	switch {
	case s.Rev != "":
		return s.Rev, nil
	case s.Tag != "":
		return s.Tag, nil
	case s.Branch != "":
		return s.Branch, nil
	default:
		return "", fmt.Errorf("git sources require rev, tag, or branch")
	}
}

// revisions lists the revisions to try, most specific first. Branches of
// a fresh clone only exist as remote-tracking refs.
func (s Source) revisions() ([]plumbing.Revision, error) {
	switch {
	case s.Rev != "":
		return []plumbing.Revision{plumbing.Revision(s.Rev)}, nil
	case s.Tag != "":
		return []plumbing.Revision{plumbing.Revision("refs/tags/" + s.Tag)}, nil
	case s.Branch != "":
		return []plumbing.Revision{
			plumbing.Revision("refs/heads/" + s.Branch),
			plumbing.Revision("refs/remotes/" + git.DefaultRemoteName + "/" + s.Branch),
		}, nil
	default:
		return nil, fmt.Errorf("git sources require rev, tag, or branch")
	}
}

// Loader reads program text for a Source.
type Loader struct {
	log *logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger routes the loader's progress messages to l.
func WithLogger(l *logger.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.log = l
		}
	}
}

// NewLoader returns a loader that logs nowhere unless WithLogger is given.
func NewLoader(opts ...Option) *Loader {
	ld := &Loader{log: logger.NewFromOptions(&logger.Options{SyncWriter: discard{}})}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load returns the text of the program src points at.
func (l *Loader) Load(ctx context.Context, src Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch src.Kind {
	case SourceInline:
		l.log.Debugf("using inline source %s", src.label())
		return src.Inline, nil
	case SourceFile:
		if src.Path == "" {
			return "", fmt.Errorf("load: file source without a path")
		}
		l.log.Debugf("reading %s", src.Path)
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", src.Path, err)
		}
		return string(data), nil
	case SourceGit:
		return l.loadGit(ctx, src)
	default:
		return "", fmt.Errorf("load: unsupported source kind %s", src.Kind)
	}
}

func (l *Loader) loadGit(ctx context.Context, src Source) (string, error) {
	if src.Git == "" || src.Path == "" {
		return "", fmt.Errorf("load: git sources need a repository and a path")
	}
	revisions, err := src.revisions()
	if err != nil {
		return "", err
	}

	repo, err := l.openRepository(ctx, src.Git)
	if err != nil {
		return "", err
	}

	var hash *plumbing.Hash
	var resolveErr error
	for _, rev := range revisions {
		hash, resolveErr = repo.ResolveRevision(rev)
		if resolveErr == nil {
			break
		}
	}
	if resolveErr != nil {
		return "", fmt.Errorf("resolve revision %s: %w", revisions[0], resolveErr)
	}
	l.log.Debugf("resolved %s to %s", src.Describe(), hash)

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("read commit %s: %w", hash, err)
	}
	file, err := commit.File(strings.TrimPrefix(src.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("read %s at %s: %w", src.Path, hash, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s at %s: %w", src.Path, hash, err)
	}
	return contents, nil
}

// openRepository opens a local repository in place, or clones a remote one
// into memory.
func (l *Loader) openRepository(ctx context.Context, location string) (*git.Repository, error) {
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		l.log.Debugf("opening repository %s", location)
		repo, err := git.PlainOpen(location)
		if err != nil {
			return nil, fmt.Errorf("git open %s: %w", location, err)
		}
		return repo, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("git open %s: %w", location, err)
	}

	l.log.Infof("cloning %s", location)
	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:  location,
		Tags: git.AllTags,
	})
	if err != nil {
		return nil, fmt.Errorf("git clone %s: %w", location, err)
	}
	return repo, nil
}

// discard is a logger.SyncWriter that drops everything.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) Sync() error                 { return nil }
