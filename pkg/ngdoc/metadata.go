package ngdoc

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

//go:embed ignore.words
var defaultIgnoreWords string

var (
	ignoreSeparator = regexp.MustCompile(`[,\s]+`)
	keywordSplit    = regexp.MustCompile("[.\\s,`'\"#]+")
	keywordToken    = regexp.MustCompile(`^((?:ng:|[$_a-z])[\w\-]+)`)
	nameSegment     = regexp.MustCompile(`:\s*`)
)

// IgnoreWords is the set of lower-cased tokens never used as keywords
type IgnoreWords map[string]bool

// DefaultIgnoreWords returns the built-in English stop-word list
func DefaultIgnoreWords() IgnoreWords {
	return parseIgnoreWords(defaultIgnoreWords)
}

// LoadIgnoreWords reads a comma or whitespace separated word list
func LoadIgnoreWords(path string) (IgnoreWords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore words: %w", err)
	}
	return parseIgnoreWords(string(data)), nil
}

func parseIgnoreWords(text string) IgnoreWords {
	words := make(IgnoreWords)
	for _, w := range ignoreSeparator.Split(text, -1) {
		if w != "" {
			words[strings.ToLower(w)] = true
		}
	}
	return words
}

// Page is the navigation projection of a doc
type Page struct {
	Section          string `json:"section"`
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortName        string `json:"shortName"`
	Type             string `json:"type"`
	ModuleName       string `json:"moduleName"`
	ShortDescription string `json:"shortDescription"`
	Keywords         string `json:"keywords"`
	IsDeprecated     bool   `json:"isDeprecated"`
}

// Metadata projects docs to navigation pages, sorted for the sidebar
func Metadata(docs []*Doc, ignore IgnoreWords) []Page {
	pages := make([]Page, 0, len(docs))
	for _, d := range docs {
		name := d.title.Name
		if name == "" {
			name = d.Name
		}
		pages = append(pages, Page{
			Section:          d.Section,
			ID:               d.ID,
			Name:             name,
			ShortName:        navShortName(d.Name),
			Type:             d.Kind,
			ModuleName:       d.ModuleName,
			ShortDescription: d.ShortDescription(),
			Keywords:         d.Keywords(ignore),
			IsDeprecated:     d.IsDeprecated(),
		})
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return sidebarLess(pages[i], pages[j])
	})
	return pages
}

// navShortName is the part of name after the last colon; input directives
// read "input [type]"
func navShortName(name string) string {
	parts := nameSegment.Split(name, -1)
	short := strings.TrimSpace(parts[len(parts)-1])
	if len(parts) > 1 && parts[len(parts)-2] == "input" {
		short = "input [" + short + "]"
	}
	return short
}

// Keywords returns the sorted, space separated search keywords of the doc
func (d *Doc) Keywords(ignore IgnoreWords) string {
	seen := make(map[string]bool)
	var words []string

	extract := func(text string) {
		for _, token := range keywordSplit.Split(strings.ToLower(text), -1) {
			m := keywordToken.FindStringSubmatch(token)
			if m == nil || ignore[m[1]] || seen[m[1]] {
				continue
			}
			seen[m[1]] = true
			words = append(words, m[1])
		}
	}

	extract(d.Text)
	for _, p := range d.Properties {
		extract(firstNonEmpty(p.Text, p.Description))
	}
	for _, m := range d.Methods {
		extract(firstNonEmpty(m.Text, m.Description))
	}
	if d.Kind == KindError {
		ns, _ := d.MinerrNamespace()
		code, _ := d.MinerrCode()
		words = append(words, ns, code)
	}

	sort.Strings(words)
	return strings.Join(words, " ")
}

var keywordPriority = map[string]int{
	".index":                                  1,
	".overview":                               1,
	".bootstrap":                              2,
	".mvc":                                    3,
	".scopes":                                 4,
	".compiler":                               5,
	".templates":                              6,
	".services":                               7,
	".di":                                     8,
	".unit-testing":                           9,
	".dev_guide":                              9,
	".dev_guide.overview":                     1,
	".dev_guide.bootstrap":                    2,
	".dev_guide.bootstrap.auto_bootstrap":     1,
	".dev_guide.bootstrap.manual_bootstrap":   2,
	".dev_guide.mvc":                          3,
	".dev_guide.mvc.understanding_model":      1,
	".dev_guide.mvc.understanding_controller": 2,
	".dev_guide.mvc.understanding_view":       3,
	".dev_guide.scopes":                       4,
	".dev_guide.scopes.understanding_scopes":  1,
	".dev_guide.scopes.internals":             2,
	".dev_guide.compiler":                     5,
	".dev_guide.templates":                    6,
	".dev_guide.services":                     7,
	".dev_guide.di":                           8,
	".dev_guide.unit-testing":                 9,
}

const defaultKeywordPriority = 5

var guidePriority = []string{
	"introduction",
	"overview",
	"concepts",
	"dev_guide.mvc",

	"dev_guide.mvc.understanding_controller",
	"dev_guide.mvc.understanding_model",
	"dev_guide.mvc.understanding_view",

	"dev_guide.services.understanding_services",
	"dev_guide.services.managing_dependencies",
	"dev_guide.services.creating_services",
	"dev_guide.services.injecting_controllers",
	"dev_guide.services.testing_services",
	"dev_guide.services.$location",
	"dev_guide.services",

	"databinding",
	"dev_guide.templates.css-styling",
	"dev_guide.templates.filters.creating_filters",
	"dev_guide.templates.filters",
	"dev_guide.templates.filters.using_filters",
	"dev_guide.templates",

	"di",
	"providers",
	"module",
	"scope",
	"expression",
	"bootstrap",
	"directive",
	"compiler",

	"forms",
	"animations",

	"dev_guide.e2e-testing",
	"dev_guide.unit-testing",

	"i18n",
	"ie",
	"migration",
}

func guideIndex(id string) int {
	for i, g := range guidePriority {
		if g == id {
			return i
		}
	}
	return -1
}

// sidebarLess orders listed guide ids first by list position, then
// everything else by mangled name
func sidebarLess(a, b Page) bool {
	pa, pb := guideIndex(a.ID), guideIndex(b.ID)
	switch {
	case pa >= 0 && pb >= 0:
		return pa < pb
	case pa >= 0:
		return true
	case pb >= 0:
		return false
	}
	return mangleName(a) < mangleName(b)
}

// mangleName interleaves the priority of each partial id with its segment,
// so "api/ng.$http" becomes "api/5.ng.5.$http"
func mangleName(p Page) string {
	var mangled []string
	partial := ""
	for _, name := range strings.Split(p.ID, ".") {
		partial += "." + name
		prio, ok := keywordPriority[partial]
		if !ok {
			prio = defaultKeywordPriority
		}
		mangled = append(mangled, fmt.Sprint(prio), name)
	}
	return strings.ToLower(p.Section + "/" + strings.Join(mangled, "."))
}
