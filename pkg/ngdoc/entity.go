package ngdoc

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/platinummonkey/uidocs/pkg/example"
	"github.com/platinummonkey/uidocs/pkg/markdown"
	"github.com/platinummonkey/uidocs/pkg/minerr"
)

// Documentation kinds with dedicated rendering or parsing behavior
const (
	KindFunction   = "function"
	KindProperty   = "property"
	KindDirective  = "directive"
	KindComponent  = "component"
	KindFilter     = "filter"
	KindInputType  = "inputType"
	KindOverview   = "overview"
	KindError      = "error"
	KindService    = "service"
	KindObject     = "object"
	KindController = "controller"
	KindType       = "type"
	KindInterface  = "interface"
)

// DefaultLinkPrefix is the hash routing prefix used when HTML5 mode is off
const DefaultLinkPrefix = "#!"

// DefaultNotesPrefix is prepended to //!details paths
const DefaultNotesPrefix = "/notes/"

// LinkFunc builds an external URL for a location in a source file
type LinkFunc func(file string, line, codeline int) string

// SourceReader reads files referenced by inclusion markup. ok is false when
// the file does not exist.
type SourceReader interface {
	ReadSource(path string) (content string, ok bool, err error)
}

// Options configures parsing and rendering of a Doc
type Options struct {
	// HTML5Mode disables the hash routing prefix on generated links
	HTML5Mode bool

	// LinkPrefix is the routing prefix used when HTML5Mode is off
	LinkPrefix string

	// HighlightCodeFences turns ``` fences into styled pre blocks
	HighlightCodeFences bool

	// IsAPI marks the section as API reference; enables source links
	IsAPI bool

	// NotesPrefix is prepended to //!details paths
	NotesPrefix string

	EditLink   LinkFunc
	SourceLink LinkFunc

	Markdown markdown.Renderer
	Sources  SourceReader
	Errors   *minerr.Table
	Examples *example.Sequence
}

// routePrefix returns the prefix put in front of section-qualified hrefs
func (o *Options) routePrefix() string {
	if o.HTML5Mode {
		return ""
	}
	return o.LinkPrefix + "/"
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.LinkPrefix == "" {
		out.LinkPrefix = DefaultLinkPrefix
	}
	if out.NotesPrefix == "" {
		out.NotesPrefix = DefaultNotesPrefix
	}
	if out.Markdown == nil {
		out.Markdown = markdown.NewEngine()
	}
	if out.Sources == nil {
		out.Sources = osSources{}
	}
	if out.Examples == nil {
		out.Examples = &example.Sequence{}
	}
	return &out
}

type osSources struct{}

func (osSources) ReadSource(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Param is one entry of a @param table
type Param struct {
	Name        string
	Type        string
	Optional    bool
	Default     string
	Description string
	IsProperty  bool
	Properties  []*Param
}

// Returns describes a @returns tag
type Returns struct {
	Type        string
	Description string
}

// Require is a @requires dependency reference
type Require struct {
	Name string
	Text string
}

// Doc is one documentation entity parsed from an annotated block
type Doc struct {
	Text     string
	File     string
	Line     int
	CodeLine int

	Name       string
	ID         string
	ShortName  string
	Section    string
	ModuleName string
	Kind       string

	Description string
	Example     string
	This        string

	MethodOf   string
	PropertyOf string
	EventOf    string

	Restrict   string
	Element    string
	Usage      string
	Animations string

	Params     []*Param
	Returns    *Returns
	Requires   []*Require
	Properties []*Doc
	Methods    []*Doc
	Events     []*Doc

	// Type and Target come from @eventType, or Type from a @property declaration
	Type        string
	Target      string
	Constructor bool

	Links     []string
	Anchors   []string
	Scenarios []string

	// OrphanParams lists dotted @param names whose parent parameter was not
	// declared before them. They are not part of Params.
	OrphanParams []string

	// Tags holds every tag without a dedicated field, keyed by tag name
	Tags map[string]string

	title   Title
	options *Options
}

// New creates an unparsed doc for a block of text that starts at startLine and
// ends at endLine of file
func New(text, file string, startLine, endLine int, opts *Options) *Doc {
	return &Doc{
		Text:     text,
		File:     file,
		Line:     startLine,
		CodeLine: endLine + 1,
		Tags:     make(map[string]string),
		options:  opts.withDefaults(),
	}
}

func (d *Doc) opts() *Options {
	if d.options == nil {
		d.options = (*Options)(nil).withDefaults()
	}
	return d.options
}

// Tag returns the raw text of a generic tag and whether it was present
func (d *Doc) Tag(name string) (string, bool) {
	v, ok := d.Tags[name]
	return v, ok
}

// IsDeprecated reports whether the doc carries a @deprecated tag
func (d *Doc) IsDeprecated() bool {
	_, ok := d.Tag("deprecated")
	return ok
}

// FullID is the section-qualified id used for merge and link lookups
func (d *Doc) FullID() string {
	return d.Section + "/" + d.ID
}

// MinerrNamespace returns the namespace part of an error doc name
func (d *Doc) MinerrNamespace() (string, error) {
	ns, _, err := d.splitMinerr()
	return ns, err
}

// MinerrCode returns the code part of an error doc name
func (d *Doc) MinerrCode() (string, error) {
	_, code, err := d.splitMinerr()
	return code, err
}

func (d *Doc) splitMinerr() (string, string, error) {
	if d.Kind != KindError {
		return "", "", fmt.Errorf("%w: tried to get the minErr namespace or code, but @ngdoc %s was supplied", ErrNotErrorKind, d.Kind)
	}
	parts := strings.Split(d.Name, ":")
	if len(parts) < 2 {
		return parts[0], "", nil
	}
	return parts[0], parts[1], nil
}

var (
	htmlTag = regexp.MustCompile(`<.+?/?>`)
	newLine = regexp.MustCompile(`\r?\n`)
)

// ShortDescription returns the first line of the rendered description with
// tags removed and curly braces escaped
func (d *Doc) ShortDescription() string {
	if d.Description == "" {
		return ""
	}
	text := strings.SplitN(d.Description, "\n", 2)[0]
	text = htmlTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "{", "&#123;")
	return strings.ReplaceAll(text, "}", "&#125;")
}
