// Package example composes runnable example fragments embedded in documentation pages.
//
// An Example collects named source files, a module name and script
// dependencies, then renders a source view, tabbed listings and a live demo
// container. Scenario sources (scenario.js, protractor.js) are also appended
// to the scenario list handed to New, which is how entities collect their
// end-to-end test snippets.
package example

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/platinummonkey/uidocs/pkg/dom"
)

// AnimateDep is the dependency added when animations are enabled
const AnimateDep = "angular-animate.js"

var depSeparator = regexp.MustCompile(`[\s,;]+`)

// Sequence hands out example ids that are unique within a run
type Sequence struct {
	next int
}

// Next returns the next id
func (s *Sequence) Next() int {
	s.next++
	return s.next
}

type source struct {
	name    string
	id      string
	content string
}

// Example is a runnable example under construction
type Example struct {
	id         int
	module     string
	animations bool
	deps       []string
	sources    map[string][]source
	scenarios  *[]string
}

// New creates an example that appends scenario sources to scenarios.
// seq may be nil, in which case ids restart from one.
func New(scenarios *[]string, seq *Sequence) *Example {
	if seq == nil {
		seq = &Sequence{}
	}
	return &Example{
		id:        seq.Next(),
		deps:      []string{"angular.js"},
		sources:   make(map[string][]source),
		scenarios: scenarios,
	}
}

// EnableAnimations marks the example as using animations
func (e *Example) EnableAnimations() {
	e.animations = true
}

// SetModule sets the module bootstrapped by the live demo. Empty names are ignored.
func (e *Example) SetModule(module string) {
	if module != "" {
		e.module = module
	}
}

// Module returns the module name
func (e *Example) Module() string {
	return e.module
}

// AddDeps adds script dependencies from a whitespace, comma or semicolon
// separated list
func (e *Example) AddDeps(deps string) {
	for _, dep := range depSeparator.Split(deps, -1) {
		if dep != "" {
			e.deps = append(e.deps, dep)
		}
	}
}

// Deps returns the script dependencies in insertion order
func (e *Example) Deps() []string {
	return append([]string(nil), e.deps...)
}

// AddSource adds a named source file
func (e *Example) AddSource(name, content string) {
	kind := sourceKind(name)
	e.sources[kind] = append(e.sources[kind], source{
		name:    name,
		id:      fmt.Sprintf("%s-%d", name, e.id),
		content: content,
	})

	switch kind {
	case "scenario":
		if e.scenarios != nil {
			*e.scenarios = append(*e.scenarios, content)
		}
	case "js":
		e.deps = append(e.deps, name)
	}
}

func sourceKind(name string) string {
	switch name {
	case "scenario.js", "protractor.js":
		return "scenario"
	case "spec.js", "unit.js":
		return "unit"
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return "html"
}

// ToHTML renders the example
func (e *Example) ToHTML() string {
	var b strings.Builder
	b.WriteString("<h1>Source</h1>\n")
	e.writeEdit(&b)
	e.writeTabs(&b)
	b.WriteString("<h1>Demo</h1>\n")
	e.writeEmbed(&b)
	return b.String()
}

func (e *Example) ids(kind string) string {
	ids := make([]string, 0, len(e.sources[kind]))
	for _, s := range e.sources[kind] {
		ids = append(ids, s.id)
	}
	return strings.Join(ids, " ")
}

func (e *Example) writeEdit(b *strings.Builder) {
	fmt.Fprintf(b, `<div source-edit="%s" source-edit-deps="%s" source-edit-html="%s" source-edit-css="%s" source-edit-js="%s" source-edit-json="%s" source-edit-unit="%s" source-edit-scenario="%s"></div>`+"\n",
		escapeAttr(e.module),
		escapeAttr(strings.Join(e.deps, " ")),
		e.ids("html"), e.ids("css"), e.ids("js"), e.ids("json"), e.ids("unit"), e.ids("scenario"))
}

func (e *Example) writeTabs(b *strings.Builder) {
	b.WriteString(`<div class="tabbable">`)
	for _, kind := range []string{"html", "css", "js", "json", "unit", "scenario"} {
		for _, s := range e.sources[kind] {
			fmt.Fprintf(b, `<div class="tab-pane" title="%s">`, escapeAttr(s.name))
			fmt.Fprintf(b, `<pre class="prettyprint linenums" ng-set-text="%s"></pre>`, escapeAttr(s.id))
			fmt.Fprintf(b, `<script type="text/ng-template" id="%s">%s</script>`, escapeAttr(s.id), s.content)
			b.WriteString("</div>\n")
		}
	}
	b.WriteString("</div>")
}

func (e *Example) writeEmbed(b *strings.Builder) {
	class := "well doc-example-live"
	if e.animations {
		class += " animate-container"
	}
	fmt.Fprintf(b, `<div class="%s" ng-embed-app="%s" ng-set-html="%s" ng-eval-javascript="%s"></div>`,
		class, escapeAttr(e.module), e.ids("html"), e.ids("js"))
}

func escapeAttr(v string) string {
	return strings.ReplaceAll(dom.Escape(v), `"`, "&quot;")
}
