package ngdoc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/platinummonkey/uidocs/pkg/dom"
)

// maxParamDepth bounds the nesting of property tables inside parameter tables
const maxParamDepth = 8

var booleanAttr = map[string]bool{
	"multiple": true,
	"selected": true,
	"checked":  true,
	"disabled": true,
	"readOnly": true,
	"required": true,
}

var (
	requireLinkWord = regexp.MustCompile(`^\{@link\s\w+\b.*\}$`)
	linkOpen        = regexp.MustCompile(`\{@link\s+`)
	nameSeparators  = regexp.MustCompile(`[.:/]`)
	quotedType      = regexp.MustCompile(`^\{'(.*)'\}$`)
	globalFunction  = regexp.MustCompile(`^angular(\.mock)?\.(\w+)$`)
)

// renderRoute renders the kind-specific usage block of a page
type renderRoute struct {
	kinds  []string
	render func(d *Doc, out *dom.DOM)
}

// renderRoutes are consulted in order; a kind without a route cannot be rendered
var renderRoutes = []renderRoute{
	{kinds: []string{KindFunction}, render: (*Doc).usageFunction},
	{kinds: []string{KindProperty}, render: (*Doc).usageProperty},
	{kinds: []string{KindDirective}, render: (*Doc).usageDirective},
	{kinds: []string{KindComponent}, render: (*Doc).usageComponent},
	{kinds: []string{KindFilter}, render: (*Doc).usageFilter},
	{kinds: []string{KindInputType}, render: (*Doc).usageInputType},
	{kinds: []string{KindOverview}, render: (*Doc).usageOverview},
	{kinds: []string{KindError}, render: func(*Doc, *dom.DOM) {}},
	{kinds: []string{KindService, KindObject, KindController, KindType, KindInterface}, render: (*Doc).usageInterface},
}

func routeFor(kind string) (func(d *Doc, out *dom.DOM), bool) {
	for _, r := range renderRoutes {
		for _, k := range r.kinds {
			if k == kind {
				return r.render, true
			}
		}
	}
	return nil, false
}

// HTML renders the page of a parsed (and merged) doc. The anchors of the
// page are added to d.Anchors.
func (d *Doc) HTML() (string, error) {
	usage, ok := routeFor(d.Kind)
	if !ok {
		return "", d.parseError(ErrUnknownKind, d.Kind)
	}

	var errMsg string
	if d.Kind == KindError {
		msg, err := d.lookupErrorMessage()
		if err != nil {
			return "", err
		}
		errMsg = msg
	}

	opts := d.opts()
	out := dom.New()

	if opts.EditLink != nil {
		out.Tag("a", dom.Attrs{
			{Key: "href", Value: opts.EditLink(d.File, d.Line, d.CodeLine)},
			{Key: "class", Value: "improve-docs"},
		}, func(out *dom.DOM) {
			out.TagText("i", dom.Attrs{{Key: "class", Value: "icon-edit"}}, " ")
			out.Text("Improve this doc")
		})
	}
	if opts.SourceLink != nil && opts.IsAPI {
		out.Tag("a", dom.Attrs{
			{Key: "href", Value: opts.SourceLink(d.File, d.Line, d.CodeLine)},
			{Key: "class", Value: "view-source"},
		}, func(out *dom.DOM) {
			out.TagText("i", dom.Attrs{{Key: "class", Value: "icon-eye-open"}}, " ")
			out.Text("View source")
		})
	}

	out.HFunc(d.title.render, func(out *dom.DOM) {
		if msg, ok := d.Tag("deprecated"); ok {
			out.Tag("fieldset", dom.Attrs{{Key: "class", Value: "deprecated"}}, func(out *dom.DOM) {
				out.TagText("legend", nil, "Deprecated API")
				out.Text(msg)
			})
		}
		if d.Kind == KindError {
			out.TagText("pre", dom.Attrs{
				{Key: "class", Value: "minerr-errmsg"},
				{Key: "error-display", Value: errMsg},
			}, errMsg)
		}
		if d.Kind != KindOverview {
			out.HHTML("Description", d.Description)
		}
		d.renderRequires(out)
		usage(d, out)
		out.HHTML("Example", d.Example)
	})

	for _, a := range out.Anchors() {
		if !containsFold(d.Anchors, a) {
			d.Anchors = append(d.Anchors, a)
		}
	}
	return out.String(), nil
}

func (d *Doc) lookupErrorMessage() (string, error) {
	ns, err := d.MinerrNamespace()
	if err != nil {
		return "", err
	}
	code, _ := d.MinerrCode()
	msg, err := d.opts().Errors.Lookup(ns, code)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrMissingErrorMessage, d.Name, err)
	}
	return msg, nil
}

// renderRequires emits the Dependencies list
func (d *Doc) renderRequires(out *dom.DOM) {
	out.HList("Dependencies", len(d.Requires), func(out *dom.DOM, i int) {
		req := d.Requires[i]
		id, name := requireTarget(req.Name)
		out.Tag("code", nil, func(out *dom.DOM) {
			out.TagText("a", dom.Attrs{{Key: "href", Value: d.ConvertURLToAbsolute(id)}}, name)
		})
		out.HTML(req.Text)
	})
}

// requireTarget splits a @requires reference into link target and label.
// It accepts "[label]{@link target}", "{@link target label}" and bare names.
func requireTarget(ref string) (id, name string) {
	if strings.HasPrefix(ref, "[") && strings.HasSuffix(ref, "}") {
		if end := strings.LastIndex(ref, "]{@link"); end > 0 {
			if loc := linkOpen.FindStringIndex(ref[end:]); loc != nil {
				id = ref[end+loc[1] : len(ref)-1]
				name = strings.NewReplacer("[", "", "]", "").Replace(ref[:end+1])
				return id, name
			}
		}
	}

	if requireLinkWord.MatchString(ref) {
		parts := strings.Split(strings.Replace(ref, "|", " ", 1)[:len(ref)-1], " ")[1:]
		id = parts[0]
		if len(parts) > 1 {
			return id, strings.Join(parts[1:], " ")
		}
		return id, lastSegment(id)
	}

	id = ref
	if strings.HasPrefix(ref, "$") {
		id = "ng." + ref
	}
	return id, lastSegment(ref)
}

func lastSegment(name string) string {
	parts := nameSeparators.Split(name, -1)
	return parts[len(parts)-1]
}

// dashCase converts camelCase to dash-case
func dashCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// splitTypes splits a type union on '|', except inside generic brackets
// such as Array.<string|number>
func splitTypes(types string) []string {
	if strings.HasPrefix(types, "(") {
		types = types[1:]
	}
	if n := len(types); n > 1 && types[n-1] == ')' && types[n-2] != '(' {
		types = types[:n-1]
	}

	var parts []string
	start := 0
	for i := 0; i < len(types); i++ {
		if types[i] != '|' || insideGeneric(types[i+1:]) {
			continue
		}
		parts = append(parts, types[start:i])
		start = i + 1
	}
	return append(parts, types[start:])
}

// insideGeneric reports whether rest starts with a run of type characters
// closed by '>'
func insideGeneric(rest string) bool {
	j := 0
	for j < len(rest) && isTypeChar(rest[j]) {
		j++
	}
	return j > 0 && j < len(rest) && rest[j] == '>'
}

func isTypeChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_()| \t\n\r\f\v", c) >= 0
}

func typeHint(out *dom.DOM, typ string) {
	out.HTML(`<a href="" class="` + typeHintClass(typ) + `">`)
	out.Text(typ)
	out.HTML(`</a>`)
}

func (d *Doc) usageAnimations(out *dom.DOM) {
	if d.Animations == "" {
		return
	}
	out.H("Animations", func(out *dom.DOM) {
		out.HTML("<ul>")
		for _, ani := range strings.Split(d.Animations, "\n") {
			out.HTML("<li>")
			out.Text(ani)
			out.HTML("</li>")
		}
		out.HTML("</ul>")
	})
}

func (d *Doc) usageParameters(out *dom.DOM) {
	d.usageAnimations(out)
	paramTable(out, "Parameters", "Param", d.Params)
}

func (d *Doc) usageBindings(out *dom.DOM) {
	d.usageAnimations(out)
	paramTable(out, "Bindings", "Binding", d.Params)
}

func paramTable(out *dom.DOM, heading, column string, params []*Param) {
	if len(params) == 0 {
		return
	}
	out.HTML("<h2>" + heading + "</h2>")
	out.HTML(`<table class="variables-matrix table table-bordered table-striped">`)
	out.HTML("<thead><tr><th>" + column + "</th><th>Type</th><th>Details</th></tr></thead>")
	out.HTML("<tbody>")
	paramRows(out, params, 0)
	out.HTML("</tbody>")
	out.HTML("</table>")
}

func paramRows(out *dom.DOM, params []*Param, depth int) {
	for _, p := range params {
		out.HTML("<tr>")
		out.HTML("<td>")
		out.Text(p.Name)
		if p.Optional {
			out.HTML(" <div><em>(optional)</em></div>")
		}
		out.HTML("</td>")

		out.HTML("<td>")
		for _, t := range splitTypes(p.Type) {
			typeHint(out, t)
		}
		out.HTML("</td>")

		out.HTML("<td>")
		out.HTML(p.Description)
		if p.Default != "" {
			out.HTML(" <p><em>(default: ")
			out.Text(p.Default)
			out.HTML(")</em></p>")
		}
		if len(p.Properties) > 0 && depth < maxParamDepth {
			out.HTML("<table>")
			out.HTML("<thead><tr><th>Property</th><th>Type</th><th>Details</th></tr></thead>")
			out.HTML("<tbody>")
			paramRows(out, p.Properties, depth+1)
			out.HTML("</tbody>")
			out.HTML("</table>")
		}
		out.HTML("</td>")
		out.HTML("</tr>")
	}
}

func (d *Doc) usageReturns(out *dom.DOM) {
	if d.Returns == nil {
		return
	}
	out.HTML("<h2>Returns</h2>")
	out.HTML(`<table class="variables-matrix">`)
	out.HTML("<tr><td>")
	typeHint(out, d.Returns.Type)
	out.HTML("</td><td>")
	out.HTML(d.Returns.Description)
	out.HTML("</td></tr>")
	out.HTML("</table>")
}

func (d *Doc) usageThis(out *dom.DOM) {
	if d.This == "" {
		return
	}
	out.HFunc(func(out *dom.DOM) {
		out.HTML("Method's <code>this</code>")
	}, func(out *dom.DOM) {
		out.HTML(d.This)
	})
}

// parameters writes the call signature arguments. Properties of object
// parameters are left out.
func (d *Doc) parameters(out *dom.DOM, separator string, skipFirst bool) {
	sep := ""
	for i, p := range d.Params {
		if !(skipFirst && i == 0) {
			if p.IsProperty {
				continue
			}
			if p.Optional {
				out.Text("[" + sep + p.Name + "]")
			} else {
				out.Text(sep + p.Name)
			}
		}
		sep = separator
	}
}

func (d *Doc) usageFunction(out *dom.DOM) {
	name := d.Name
	if !globalFunction.MatchString(name) {
		name = name[strings.LastIndex(name, ".")+1:]
	}
	name = name[strings.LastIndex(name, ":")+1:]

	out.H("Usage", func(out *dom.DOM) {
		out.Code(func(out *dom.DOM) {
			if d.Constructor {
				out.Text("new ")
			}
			out.Text(name)
			out.Text("(")
			d.parameters(out, ", ", false)
			out.Text(");")
		})
		d.usageParameters(out)
		d.usageThis(out)
		d.usageReturns(out)
	})
	d.methodsPropertiesEvents(out)
}

func (d *Doc) usageProperty(out *dom.DOM) {
	out.H("Usage", func(out *dom.DOM) {
		out.Code(func(out *dom.DOM) {
			out.Text(d.Name[strings.LastIndex(d.Name, ":")+1:])
		})
		d.usageReturns(out)
	})
}

func (d *Doc) usageDirective(out *dom.DOM) {
	out.H("Usage", func(out *dom.DOM) {
		restrict := d.Restrict
		if restrict == "" {
			restrict = "A"
		}
		element := d.Element
		if element == "" {
			element = "ANY"
		}
		tag := dashCase(d.ShortName)

		if d.Usage != "" {
			out.Code(func(out *dom.DOM) { out.Text(d.Usage) })
		} else {
			if strings.Contains(restrict, "E") {
				out.Text("as element:")
				out.Code(func(out *dom.DOM) {
					out.Text("<" + tag)
					d.renderAttributes(out, "\n       ", `="`, `"`, false)
					out.Text(">\n</" + tag + ">")
				})
			}
			if strings.Contains(restrict, "A") {
				out.Text("as attribute")
				out.Code(func(out *dom.DOM) {
					out.Text("<" + element + " " + tag)
					d.renderAttributes(out, "\n     ", `="`, `"`, true)
					out.Text(">\n   ...\n</" + element + ">")
				})
			}
			if strings.Contains(restrict, "C") {
				out.Text("as class")
				out.Code(func(out *dom.DOM) {
					out.Text("<" + element + ` class="` + tag)
					d.renderAttributes(out, " ", ": ", ";", true)
					out.Text("\">\n   ...\n</" + element + ">")
				})
			}
		}
		d.directiveInfo(out)
		d.usageParameters(out)
	})
	d.methodsPropertiesEvents(out)
}

// renderAttributes writes the parameters of a directive or component as
// markup attributes. With skipSelf the parameter named like the directive
// itself is left out.
func (d *Doc) renderAttributes(out *dom.DOM, prefix, infix, suffix string, skipSelf bool) {
	for _, p := range d.Params {
		skip := skipSelf && (p.Name == d.ShortName || strings.HasPrefix(p.Name, d.ShortName+"|"))
		if !skip {
			out.Text(prefix)
			if p.Optional {
				out.Text("[")
			}
			parts := strings.Split(p.Name, "|")
			attr := parts[0]
			if !skipSelf && len(parts) > 1 && parts[1] != "" {
				attr = parts[1]
			}
			out.Text(dashCase(attr))
		}
		if booleanAttr[p.Name] {
			if p.Optional {
				out.Text("]")
			}
			continue
		}
		out.Text(infix)
		out.Text(quotedType.ReplaceAllString("{"+p.Type+"}", "$1"))
		out.Text(suffix)
		if p.Optional && !skip {
			out.Text("]")
		}
	}
}

func (d *Doc) directiveInfo(out *dom.DOM) {
	var list []string
	if _, ok := d.Tag("scope"); ok {
		list = append(list, "This directive creates new scope.")
	}
	if priority, ok := d.Tag("priority"); ok {
		list = append(list, "This directive executes at priority level "+priority+".")
	}
	if len(list) > 0 {
		out.H("Directive info", func(out *dom.DOM) { out.UL(list) })
	}
}

func (d *Doc) componentInfo(out *dom.DOM) {
	if _, ok := d.Tag("bindings"); ok {
		out.H("Component info", func(out *dom.DOM) {
			out.UL([]string{"This component uses:"})
		})
	}
}

func (d *Doc) usageComponent(out *dom.DOM) {
	tag := dashCase(d.ShortName)
	out.H("Usage", func(out *dom.DOM) {
		out.Code(func(out *dom.DOM) {
			out.Text("<" + tag)
			d.renderAttributes(out, "\n       ", `="`, `"`, false)
			out.Text(">\n</" + tag + ">")
		})
		d.componentInfo(out)
		d.usageBindings(out)
	})
	d.methodsPropertiesEvents(out)
}

func (d *Doc) usageFilter(out *dom.DOM) {
	out.H("Usage", func(out *dom.DOM) {
		out.H("In HTML Template Binding", func(out *dom.DOM) {
			out.Tag("code", nil, func(out *dom.DOM) {
				if d.Usage != "" {
					out.Text(d.Usage)
					return
				}
				out.Text("{{ " + d.ShortName + "_expression | " + d.ShortName)
				d.parameters(out, ":", true)
				out.Text(" }}")
			})
		})
		out.H("In JavaScript", func(out *dom.DOM) {
			out.Tag("code", nil, func(out *dom.DOM) {
				out.Text("$filter('" + d.ShortName + "')(")
				d.parameters(out, ", ", false)
				out.Text(")")
			})
		})
		d.usageParameters(out)
		d.usageThis(out)
		d.usageReturns(out)
	})
}

func (d *Doc) usageInputType(out *dom.DOM) {
	out.H("Usage", func(out *dom.DOM) {
		out.Code(func(out *dom.DOM) {
			out.Text(`<input type="` + d.ShortName + `"`)
			for _, p := range d.Params {
				out.Text("\n      ")
				if p.Optional {
					out.Text(" [")
				} else {
					out.Text(" ")
				}
				out.Text(dashCase(p.Name))
				if !booleanAttr[p.Name] {
					out.Text(`="{` + p.Type + `}"`)
				}
				if p.Optional {
					out.Text("]")
				}
			}
			out.Text(">")
		})
		d.usageParameters(out)
	})
}

func (d *Doc) usageOverview(out *dom.DOM) {
	out.HTML(d.Description)
}

func (d *Doc) usageInterface(out *dom.DOM) {
	if len(d.Params) > 0 {
		name := d.Name[strings.LastIndex(d.Name, ".")+1:]
		name = name[strings.LastIndex(name, ":")+1:]
		out.H("Usage", func(out *dom.DOM) {
			out.Code(func(out *dom.DOM) {
				out.Text(name + "(")
				d.parameters(out, ", ", false)
				out.Text(");")
			})
			d.usageParameters(out)
			d.usageThis(out)
			d.usageReturns(out)
		})
	}
	d.methodsPropertiesEvents(out)
}

// methodsPropertiesEvents renders the merged children of d
func (d *Doc) methodsPropertiesEvents(out *dom.DOM) {
	opts := d.opts()

	if len(d.Methods) > 0 {
		out.Div(dom.Attrs{{Key: "class", Value: "member method"}}, func(out *dom.DOM) {
			out.HList("Methods", len(d.Methods), func(out *dom.DOM, i int) {
				m := d.Methods[i]
				if opts.SourceLink != nil {
					out.TagText("a", dom.Attrs{
						{Key: "href", Value: opts.SourceLink(m.File, m.Line, m.CodeLine)},
						{Key: "class", Value: "view-source icon-eye-open"},
					}, " ")
				}
				var signature []string
				for _, p := range m.Params {
					if !p.IsProperty {
						signature = append(signature, p.Name)
					}
				}
				out.H(m.ShortName+"("+strings.Join(signature, ", ")+")", func(out *dom.DOM) {
					out.HTML(m.Description)
					m.usageParameters(out)
					m.usageThis(out)
					m.usageReturns(out)
					out.HHTML("Example", m.Example)
				})
			})
		})
	}

	if len(d.Properties) > 0 {
		out.Div(dom.Attrs{{Key: "class", Value: "member property"}}, func(out *dom.DOM) {
			out.HList("Properties", len(d.Properties), func(out *dom.DOM, i int) {
				p := d.Properties[i]
				out.H(p.ShortName, func(out *dom.DOM) {
					out.HTML(p.Description)
					p.usageReturns(out)
					out.HHTML("Example", p.Example)
				})
			})
		})
	}

	if len(d.Events) > 0 {
		out.Div(dom.Attrs{{Key: "class", Value: "member event"}}, func(out *dom.DOM) {
			out.HList("Events", len(d.Events), func(out *dom.DOM, i int) {
				e := d.Events[i]
				out.H(e.ShortName, func(out *dom.DOM) {
					out.HTML(e.Description)
					inline := dom.Attrs{{Key: "class", Value: "inline"}}
					if e.Type == "listen" {
						out.Div(inline, func(out *dom.DOM) { out.HText("Listen on:", e.Target) })
					} else {
						out.Div(inline, func(out *dom.DOM) { out.HText("Type:", e.Type) })
						out.Div(inline, func(out *dom.DOM) { out.HText("Target:", e.Target) })
					}
					e.usageParameters(out)
					e.usageThis(out)
					out.HHTML("Example", e.Example)
				})
			})
		})
	}
}
