package template

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	cferrors "github.com/matzehuels/cardforge/pkg/errors"
)

// Kind identifies what a region holds.
type Kind string

const (
	KindArt   Kind = "art"
	KindTitle Kind = "title"
	KindStats Kind = "stats"
)

// Kinds lists every valid kind in draw order.
var Kinds = []Kind{KindArt, KindTitle, KindStats}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindArt, KindTitle, KindStats:
		return true
	}
	return false
}

// IsText reports whether regions of kind k render text.
func (k Kind) IsText() bool {
	return k == KindTitle || k == KindStats
}

// Region is one named rectangle of a template.
type Region struct {
	Name string
	Kind Kind

	// Position and size in millimetres relative to the trim origin.
	X, Y, W, H float64

	// Font is a font file path; empty selects the built-in face.
	// Size is the font size. Both apply to text kinds only.
	Font string
	Size float64
}

// Template is an immutable set of regions, at most one per kind.
type Template struct {
	regions map[string]Region
	byKind  map[Kind]string
	skipped []Skipped

	// Path is the file the template was loaded from, if any.
	Path string
}

// Skipped records a region dropped while parsing in lenient mode.
type Skipped struct {
	Name   string
	Reason string
}

// Empty returns a template with no regions. It renders the frame only.
func Empty() *Template {
	return &Template{regions: map[string]Region{}, byKind: map[Kind]string{}}
}

// Len returns the number of usable regions.
func (t *Template) Len() int { return len(t.regions) }

// Lookup returns the region of kind k, if the template defines one.
func (t *Template) Lookup(k Kind) (Region, bool) {
	name, ok := t.byKind[k]
	if !ok {
		return Region{}, false
	}
	return t.regions[name], true
}

// Art returns the art region, if any.
func (t *Template) Art() (Region, bool) { return t.Lookup(KindArt) }

// Title returns the title region, if any.
func (t *Template) Title() (Region, bool) { return t.Lookup(KindTitle) }

// Stats returns the stats region, if any.
func (t *Template) Stats() (Region, bool) { return t.Lookup(KindStats) }

// Names returns region names in sorted order.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.regions))
	for n := range t.regions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Skipped returns the regions that were dropped during a lenient parse.
func (t *Template) Skipped() []Skipped {
	return append([]Skipped(nil), t.skipped...)
}

// Without returns a copy of t lacking the region of kind k.
func (t *Template) Without(k Kind) *Template {
	out := Empty()
	out.Path = t.Path
	for name, r := range t.regions {
		if r.Kind == k {
			continue
		}
		out.regions[name] = r
		out.byKind[r.Kind] = name
	}
	return out
}

// ParseOptions controls how malformed regions are handled.
type ParseOptions struct {
	// Strict rejects the whole template on the first malformed region
	// instead of skipping it.
	Strict bool

	// BaseDir resolves relative font paths. Empty leaves them untouched.
	BaseDir string
}

// regionFile mirrors one region entry on disk.
type regionFile struct {
	X    *float64 `json:"x" toml:"x"`
	Y    *float64 `json:"y" toml:"y"`
	W    *float64 `json:"w" toml:"w"`
	H    *float64 `json:"h" toml:"h"`
	Font string   `json:"font" toml:"font"`
	Size float64  `json:"size" toml:"size"`
	Kind string   `json:"kind" toml:"kind"`
}

// Load reads a template from a .json or .toml file. A missing file yields
// an empty template, matching an editor that has not saved a layout yet.
func Load(path string, opts ParseOptions) (*Template, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t := Empty()
		t.Path = path
		return t, nil
	}
	if err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTemplate, err, "read template").WithSubject(path)
	}

	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}

	var raw map[string]regionFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTemplate, err, "decode template").WithSubject(path)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTemplate, err, "decode template").WithSubject(path)
		}
	}

	t, err := build(raw, opts)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Parse decodes a JSON template.
func Parse(data []byte, opts ParseOptions) (*Template, error) {
	var raw map[string]regionFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, cferrors.Wrap(cferrors.ErrCodeInvalidTemplate, err, "decode template")
	}
	return build(raw, opts)
}

// New builds a template from already constructed regions, validating each
// one like Parse does.
func New(regions []Region, opts ParseOptions) (*Template, error) {
	t := Empty()
	seen := make(map[string]bool, len(regions))
	for _, r := range regions {
		if seen[r.Name] {
			return nil, cferrors.New(cferrors.ErrCodeInvalidTemplate, "duplicate region name").WithSubject(r.Name)
		}
		seen[r.Name] = true
	}
	sorted := append([]Region(nil), regions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, r := range sorted {
		if err := t.add(r, opts); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func build(raw map[string]regionFile, opts ParseOptions) (*Template, error) {
	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	// Sorted so that lenient duplicate-kind resolution is deterministic.
	sort.Strings(names)

	t := Empty()
	for _, name := range names {
		rf := raw[name]
		r, err := rf.region(name, opts.BaseDir)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			t.skipped = append(t.skipped, Skipped{Name: name, Reason: cferrors.UserMessage(err)})
			continue
		}
		if err := t.add(r, opts); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// add validates r and stores it. Invalid regions are skipped unless strict.
func (t *Template) add(r Region, opts ParseOptions) error {
	err := r.Validate()
	if err == nil {
		if prev, dup := t.byKind[r.Kind]; dup {
			err = cferrors.New(cferrors.ErrCodeInvalidTemplate, "kind %q already provided by region %q", r.Kind, prev).WithSubject(r.Name)
		}
	}
	if err != nil {
		if opts.Strict {
			return err
		}
		t.skipped = append(t.skipped, Skipped{Name: r.Name, Reason: cferrors.UserMessage(err)})
		return nil
	}
	t.regions[r.Name] = r
	t.byKind[r.Kind] = r.Name
	return nil
}

func (rf regionFile) region(name, baseDir string) (Region, error) {
	kind := Kind(strings.ToLower(rf.Kind))
	if kind == "" {
		kind = Kind(strings.ToLower(name))
	}
	if rf.X == nil || rf.Y == nil || rf.W == nil || rf.H == nil {
		return Region{}, cferrors.New(cferrors.ErrCodeInvalidTemplate, "region requires x, y, w and h").WithSubject(name)
	}

	font := rf.Font
	if font != "" && baseDir != "" && !filepath.IsAbs(font) {
		font = filepath.Join(baseDir, font)
	}

	return Region{
		Name: name,
		Kind: kind,
		X:    *rf.X,
		Y:    *rf.Y,
		W:    *rf.W,
		H:    *rf.H,
		Font: font,
		Size: rf.Size,
	}, nil
}

// Validate checks that r has a known kind and a usable geometry.
func (r Region) Validate() error {
	if r.Name == "" {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region name cannot be empty")
	}
	if !r.Kind.Valid() {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "unknown region kind %q", r.Kind).WithSubject(r.Name)
	}
	if r.X < 0 || r.Y < 0 {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region position must not be negative").WithSubject(r.Name)
	}
	if r.W <= 0 || r.H <= 0 {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "region size must be positive").WithSubject(r.Name)
	}
	if r.Kind.IsText() && r.Size <= 0 {
		return cferrors.New(cferrors.ErrCodeInvalidTemplate, "text region requires a positive font size").WithSubject(r.Name)
	}
	return nil
}
