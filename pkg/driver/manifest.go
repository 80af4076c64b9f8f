package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "asa.yml"

var errManifestNotFound = errors.New("manifest not found")

// Manifest represents the parsed contents of asa.yml.
type Manifest struct {
	Path       string
	Dir        string
	Name       string
	Default    string
	Options    Options
	Entries    map[string]*EntrySpec
	EntryOrder []string
}

// Options are the run settings shared by every entry of a manifest.
type Options struct {
	PrintTree    bool
	Format       Format
	MaxCallDepth int
}

// Format selects how results are printed.
type Format string

const (
	FormatDebug Format = "debug"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
)

// IsValid reports whether the format is recognised.
func (f Format) IsValid() bool {
	switch f {
	case FormatDebug, FormatPlain, FormatJSON:
		return true
	default:
		return false
	}
}

// EntrySpec names one program: a file next to the manifest, a file inside a
// git repository, or inline source.
type EntrySpec struct {
	Name   string
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
	Source string
}

// LoadManifest parses asa.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := decodeManifest(file, absPath)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func decodeManifest(r io.Reader, absPath string) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	return raw.toManifest(absPath), nil
}

// Validate checks the manifest and reports every problem it finds in one
// *multierror.Error.
func (m *Manifest) Validate() error {
	var result *multierror.Error
	issue := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if m.Name == "" {
		issue("name must be provided")
	}
	if m.Options.Format != "" && !m.Options.Format.IsValid() {
		issue("options.format %q must be one of debug, plain, json", m.Options.Format)
	}
	if m.Options.MaxCallDepth < 0 {
		issue("options.max_call_depth must not be negative")
	}
	if m.Default != "" {
		if _, ok := m.Entries[m.Default]; !ok {
			issue("default names unknown entry %q", m.Default)
		}
	}
	for _, name := range m.EntryOrder {
		for _, msg := range m.Entries[name].validate() {
			issue("entries.%s: %s", name, msg)
		}
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = formatIssues
	return result
}

func formatIssues(errs []error) string {
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, err := range errs {
		b.WriteString("\n- ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *EntrySpec) validate() []string {
	var errs []string
	sources := 0
	for _, set := range []bool{e.Path != "" && e.Git == "", e.Git != "", e.Source != ""} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		errs = append(errs, "must specify path, git, or source")
	case sources > 1:
		errs = append(errs, "path, git, and source are mutually exclusive")
	}

	refs := 0
	for _, ref := range []string{e.Rev, e.Tag, e.Branch} {
		if ref != "" {
			refs++
		}
	}
	if e.Git != "" {
		if e.Path == "" {
			errs = append(errs, "git entries need the path of the program inside the repository")
		}
		if refs != 1 {
			errs = append(errs, "git entries need exactly one of rev, tag, or branch")
		}
	} else if refs > 0 {
		errs = append(errs, "rev, tag, and branch apply only to git entries")
	}
	return errs
}

// DefaultEntry returns the entry named by default, or the first entry in
// manifest order.
func (m *Manifest) DefaultEntry() (*EntrySpec, error) {
	if m == nil || len(m.EntryOrder) == 0 {
		return nil, fmt.Errorf("manifest: no entries defined")
	}
	if m.Default != "" {
		if entry, ok := m.Entries[m.Default]; ok {
			return entry, nil
		}
		return nil, fmt.Errorf("manifest: default entry %q not found", m.Default)
	}
	return m.Entries[m.EntryOrder[0]], nil
}

// FindEntry looks up an entry by name.
func (m *Manifest) FindEntry(name string) (*EntrySpec, bool) {
	if m == nil {
		return nil, false
	}
	entry, ok := m.Entries[strings.TrimSpace(name)]
	return entry, ok
}

// SourceFor turns an entry into a loadable Source. Relative file and
// repository paths are taken relative to the manifest directory.
func (m *Manifest) SourceFor(entry *EntrySpec) Source {
	switch {
	case entry.Source != "":
		return Source{Kind: SourceInline, Name: entry.Name, Inline: entry.Source}
	case entry.Git != "":
		return Source{
			Kind:   SourceGit,
			Name:   entry.Name,
			Git:    m.resolveRepo(entry.Git),
			Path:   entry.Path,
			Rev:    entry.Rev,
			Tag:    entry.Tag,
			Branch: entry.Branch,
		}
	default:
		return Source{Kind: SourceFile, Name: entry.Name, Path: m.resolvePath(entry.Path)}
	}
}

func (m *Manifest) resolvePath(path string) string {
	if filepath.IsAbs(path) || m.Dir == "" {
		return path
	}
	return filepath.Join(m.Dir, path)
}

// resolveRepo leaves URLs alone and anchors relative repository paths.
func (m *Manifest) resolveRepo(repo string) string {
	if strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@") {
		return repo
	}
	return m.resolvePath(repo)
}

// FindManifest walks up from start to the nearest asa.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestName, origin, errManifestNotFound)
		}
		dir = parent
	}
}

// IsManifestNotFound reports whether err came from FindManifest running out
// of parent directories.
func IsManifestNotFound(err error) bool {
	return errors.Is(err, errManifestNotFound)
}

type manifestFile struct {
	Name    string      `yaml:"name"`
	Default string      `yaml:"default"`
	Options optionsYAML `yaml:"options"`
	Entries entryMap    `yaml:"entries"`
}

type optionsYAML struct {
	PrintTree    bool   `yaml:"print_tree"`
	Format       string `yaml:"format"`
	MaxCallDepth int    `yaml:"max_call_depth"`
}

type entryYAML struct {
	Path   string `yaml:"path"`
	Git    string `yaml:"git"`
	Rev    string `yaml:"rev"`
	Tag    string `yaml:"tag"`
	Branch string `yaml:"branch"`
	Source string `yaml:"source"`
}

// entryMap keeps the entries in the order they appear in the file.
type entryMap struct {
	items []entryMapItem
}

type entryMapItem struct {
	name string
	spec *entryYAML
}

func (em *entryMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		em.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: entries must be a mapping")
	}
	items := make([]entryMapItem, 0, len(value.Content)/2)
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		keyNode := value.Content[i]
		valueNode := value.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: entries must not use empty keys")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("manifest: entry %q defined twice", key)
		}
		seen[key] = struct{}{}

		entry := new(entryYAML)
		if valueNode.Kind == yaml.ScalarNode && valueNode.Tag != "!!null" {
			// Shorthand: `main: src/main.asa`.
			entry.Path = valueNode.Value
		} else if err := valueNode.Decode(entry); err != nil {
			return fmt.Errorf("manifest: entry %q: %w", key, err)
		}
		items = append(items, entryMapItem{name: key, spec: entry})
	}
	em.items = items
	return nil
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:    path,
		Dir:     filepath.Dir(path),
		Name:    strings.TrimSpace(mf.Name),
		Default: strings.TrimSpace(mf.Default),
		Options: Options{
			PrintTree:    mf.Options.PrintTree,
			Format:       Format(strings.ToLower(strings.TrimSpace(mf.Options.Format))),
			MaxCallDepth: mf.Options.MaxCallDepth,
		},
		Entries:    make(map[string]*EntrySpec, len(mf.Entries.items)),
		EntryOrder: make([]string, 0, len(mf.Entries.items)),
	}
	for _, item := range mf.Entries.items {
		raw := item.spec
		result.Entries[item.name] = &EntrySpec{
			Name:   item.name,
			Path:   strings.TrimSpace(raw.Path),
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
			Source: raw.Source,
		}
		result.EntryOrder = append(result.EntryOrder, item.name)
	}
	return result
}
