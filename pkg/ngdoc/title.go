package ngdoc

import (
	"regexp"

	"github.com/platinummonkey/uidocs/pkg/dom"
)

var (
	globalName     = regexp.MustCompile(`^angular\.([^.]+)$`)
	moduleOnly     = regexp.MustCompile(`^([^.]+)$`)
	mockName       = regexp.MustCompile(`^angular\.mock\.([^.]+)$`)
	controllerName = regexp.MustCompile(`^(.+)\.controllers?:([^.]+)$`)
	componentName  = regexp.MustCompile(`^(.+)\.components?:([^.]+)$`)
	directiveName  = regexp.MustCompile(`^(.+)\.directives?:([^.]+)$`)
	inputDirective = regexp.MustCompile(`^(.+)\.directives?:input\.([^.]+)$`)
	customName     = regexp.MustCompile(`^(.+)\.([^.]+):([^.]+)$`)
	typeName       = regexp.MustCompile(`^([^.]+)\..+\.([A-Z][^.]+)$`)
	serviceName    = regexp.MustCompile(`^(.+)\.([^.]+?)(Provider)?$`)
)

// Title is the resolved display title of a doc. Name is shown as code,
// followed by "Kind in ComponentType Component" when both Kind and Component
// are known. Matched is false when no rule recognized the doc name, in which
// case Name is the raw doc name.
type Title struct {
	Name          string
	Kind          string
	ComponentType string
	Component     string
	Matched       bool
}

// titleRule resolves the title when the doc name matches. ok reports whether
// the rule applied.
type titleRule func(d *Doc) (t Title, ok bool)

// titleRules are evaluated in order; the first applicable rule wins
var titleRules = []titleRule{
	func(d *Doc) (Title, bool) {
		if d.Kind != KindError {
			return Title{}, false
		}
		ns, _ := d.MinerrNamespace()
		return makeTitle(d.Name, "error", "component", ns), true
	},
	func(d *Doc) (Title, bool) {
		return makeTitle("Module", "Type", "module", "ng"), d.Name == "angular.Module"
	},
	matchTitle(globalName, func(_ *Doc, g []string) Title {
		return makeTitle("angular."+g[1], "API", "module", "ng")
	}),
	matchTitle(moduleOnly, func(d *Doc, g []string) Title {
		name := g[1]
		if d.Kind == KindOverview {
			name = ""
		}
		return makeTitle(name, "", "module", g[1])
	}),
	matchTitle(mockName, func(_ *Doc, g []string) Title {
		return makeTitle("angular.mock."+g[1], "API", "module", "ng")
	}),
	func(d *Doc) (Title, bool) {
		if d.Kind != KindController {
			return Title{}, false
		}
		return matchTitle(controllerName, func(_ *Doc, g []string) Title {
			return makeTitle(g[2], "controller", "module", g[1])
		})(d)
	},
	matchTitle(componentName, func(_ *Doc, g []string) Title {
		return makeTitle(g[2], "component", "module", g[1])
	}),
	matchTitle(directiveName, func(_ *Doc, g []string) Title {
		return makeTitle(g[2], "directive", "module", g[1])
	}),
	matchTitle(inputDirective, func(_ *Doc, g []string) Title {
		return makeTitle("input ["+g[2]+"]", "directive", "module", g[1])
	}),
	matchTitle(customName, func(d *Doc, g []string) Title {
		kind := d.Kind
		if kind == "" {
			kind = g[2]
		}
		return makeTitle(g[3], kind, "module", g[1])
	}),
	func(d *Doc) (Title, bool) {
		if d.Kind != KindType {
			return Title{}, false
		}
		return matchTitle(typeName, func(d *Doc, g []string) Title {
			return makeTitle(g[2], "type", "module", firstNonEmpty(d.ModuleName, g[1]))
		})(d)
	},
	matchTitle(serviceName, func(d *Doc, g []string) Title {
		if d.Kind == KindOverview {
			// dotted module names look like services
			return makeTitle("", "", "module", d.Name)
		}
		return makeTitle(g[2], "service", "module", firstNonEmpty(d.ModuleName, g[1]))
	}),
}

func matchTitle(re *regexp.Regexp, build func(d *Doc, g []string) Title) titleRule {
	return func(d *Doc) (Title, bool) {
		g := re.FindStringSubmatch(d.Name)
		if g == nil {
			return Title{}, false
		}
		return build(d, g), true
	}
}

func makeTitle(name, kind, componentType, component string) Title {
	return Title{Name: name, Kind: kind, ComponentType: componentType, Component: component, Matched: true}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveTitle runs the title rules and infers the module name of d from
// the matched component when none was declared
func resolveTitle(d *Doc) Title {
	if d.Name == "" {
		return Title{}
	}
	for _, rule := range titleRules {
		t, ok := rule(d)
		if !ok {
			continue
		}
		if d.ModuleName == "" {
			d.ModuleName = t.Component
			if d.ModuleName == "angular" {
				d.ModuleName = "ng"
			}
		}
		return t
	}
	return Title{Name: d.Name}
}

// Title returns the resolved title of a parsed doc
func (d *Doc) Title() Title {
	return d.title
}

// String returns the title as plain text
func (t Title) String() string {
	if t.Kind != "" && t.Component != "" {
		return t.Name + " (" + t.Kind + " in " + t.ComponentType + " " + t.Component + ")"
	}
	return t.Name
}

// render emits the title markup; unmatched titles are plain text
func (t Title) render(d *dom.DOM) {
	if !t.Matched {
		d.Text(t.Name)
		return
	}
	d.TagText("code", nil, t.Name)
	d.Div(nil, func(d *dom.DOM) {
		d.Tag("span", dom.Attrs{{Key: "class", Value: "hint"}}, func(d *dom.DOM) {
			if t.Kind != "" && t.Component != "" {
				d.Text(t.Kind + " in " + t.ComponentType + " ")
				d.TagText("code", nil, t.Component)
			}
		})
	})
}
