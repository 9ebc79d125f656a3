package ngdoc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/platinummonkey/uidocs/pkg/minerr"
)

func renderDoc(t *testing.T, text string, opts *Options) (*Doc, *html.Node) {
	t.Helper()
	d := parseDoc(t, text, opts)
	out, err := d.HTML()
	require.NoError(t, err)
	node, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	return d, node
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func element(tag string, classes ...string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Data != tag {
			return false
		}
		have := strings.Fields(attr(n, "class"))
		for _, c := range classes {
			if !contains(have, c) {
				return false
			}
		}
		return true
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func TestHTML_Function(t *testing.T) {
	d, page := renderDoc(t, `
@ngdoc function
@name ui.grid.gridUtil.getColumnsFromData
@description Builds column definitions.
@param {Array} rows the rows to inspect
@param {Object=} opts parsing options
@returns {Array|Object} the columns`, nil)

	code := findAll(page, element("pre", "prettyprint"))
	require.NotEmpty(t, code)
	assert.Equal(t, "getColumnsFromData(rows[, opts]);", textOf(code[0]))

	tables := findAll(page, element("table", "variables-matrix"))
	require.Len(t, tables, 2)

	rows := findAll(tables[0], element("tr"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Param", "Type", "Details"}, cellTexts(rows[0], "th"))
	cells := cellTexts(rows[2], "td")
	assert.Equal(t, "opts (optional)", cells[0])
	assert.Equal(t, "Object", cells[1])

	hints := findAll(tables[1], element("a", "type-hint"))
	require.Len(t, hints, 2)
	assert.Equal(t, "type-hint-array", strings.Fields(attr(hints[0], "class"))[2])
	assert.Equal(t, "Object", textOf(hints[1]))

	assert.Contains(t, d.Anchors, "Description")
	assert.Contains(t, d.Anchors, "Usage")
}

func cellTexts(row *html.Node, tag string) []string {
	var out []string
	for _, c := range findAll(row, element(tag)) {
		out = append(out, strings.TrimSpace(textOf(c)))
	}
	return out
}

func TestHTML_UnknownKind(t *testing.T) {
	d := parseDoc(t, "@ngdoc widget\n@name ui.grid.widget", nil)
	_, err := d.HTML()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Contains(t, err.Error(), "widget")
}

func TestHTML_Error(t *testing.T) {
	text := "@ngdoc error\n@name $http:badreq\n@fullName Bad Request Configuration\n@description The config was not an object."

	d := parseDoc(t, text, nil)
	_, err := d.HTML()
	assert.ErrorIs(t, err, ErrMissingErrorMessage)
	assert.ErrorIs(t, err, minerr.ErrNoSource)

	table := minerr.NewTableFromMap(map[string]map[string]string{
		"$http": {"badreq": "Http request configuration must be an object. Received: {0}"},
	})
	_, page := renderDoc(t, text, &Options{Errors: table})

	pre := findAll(page, element("pre", "minerr-errmsg"))
	require.Len(t, pre, 1)
	assert.Equal(t, "Http request configuration must be an object. Received: {0}", attr(pre[0], "error-display"))
	assert.Equal(t, "Http request configuration must be an object. Received: {0}", textOf(pre[0]))
}

func TestHTML_Directive(t *testing.T) {
	d, page := renderDoc(t, `
@ngdoc directive
@name ui.grid.directive:uiGrid
@restrict E
@scope
@priority 10
@param {Object} uiGrid grid options
@deprecated use uiGridTable`, nil)

	code := findAll(page, element("pre", "prettyprint"))
	require.NotEmpty(t, code)
	assert.Equal(t, "<ui-grid\n       ui-grid=\"{Object}\">\n</ui-grid>", textOf(code[0]))

	var items []string
	for _, li := range findAll(page, element("li")) {
		items = append(items, textOf(li))
	}
	assert.Equal(t, []string{
		"This directive creates new scope.",
		"This directive executes at priority level 10.",
	}, items)

	legend := findAll(page, element("legend"))
	require.Len(t, legend, 1)
	assert.Equal(t, "Deprecated API", textOf(legend[0]))
	assert.Contains(t, d.Anchors, "Directive.info")
}

func TestHTML_DirectiveAttribute(t *testing.T) {
	_, page := renderDoc(t, `
@ngdoc directive
@name ui.grid.directive:uiGridCell
@element div
@param {string} uiGridCell column name
@param {boolean=} required marks the cell`, nil)

	code := findAll(page, element("pre", "prettyprint"))
	require.NotEmpty(t, code)
	assert.Equal(t, "<div ui-grid-cell=\"{string}\"\n     [required]>\n   ...\n</div>", textOf(code[0]))
}

func TestHTML_Filter(t *testing.T) {
	_, page := renderDoc(t, `
@ngdoc filter
@name ui.grid.filter:px
@param {number} value the value
@param {string=} unit the unit`, nil)

	code := findAll(page, element("code"))
	var texts []string
	for _, c := range code {
		texts = append(texts, textOf(c))
	}
	assert.Contains(t, texts, "{{ px_expression | px[:unit] }}")
	assert.Contains(t, texts, "$filter('px')(value[, unit])")
}

func TestHTML_MergedMembers(t *testing.T) {
	parent := parseDoc(t, "@ngdoc object\n@name ui.grid.class:Grid\n@description The grid.", nil)
	method := parseDoc(t, "@ngdoc method\n@methodOf ui.grid.class:Grid\n@name addRows\n@param {Array} newRows rows to add\n@param {boolean} newRows.silent skip events", nil)
	prop := parseDoc(t, "@ngdoc property\n@propertyOf ui.grid.class:Grid\n@name rows\n@description all rows", nil)
	event := parseDoc(t, "@ngdoc event\n@eventOf ui.grid.class:Grid\n@name rowsRendered\n@eventType broadcast on grid scope", nil)

	top, err := Merge([]*Doc{parent, method, prop, event})
	require.NoError(t, err)
	require.Equal(t, []*Doc{parent}, top)

	out, err := parent.HTML()
	require.NoError(t, err)
	page, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	methods := findAll(page, element("div", "member", "method"))
	require.Len(t, methods, 1)
	heading := findAll(methods[0], element("h3"))
	require.NotEmpty(t, heading)
	assert.Equal(t, "addRows(newRows)", textOf(heading[0]))
	assert.Equal(t, "addRows", attr(heading[0], "id"))

	assert.Len(t, findAll(page, element("div", "member", "property")), 1)

	events := findAll(page, element("div", "member", "event"))
	require.Len(t, events, 1)
	inline := findAll(events[0], element("div", "inline"))
	require.Len(t, inline, 2)
	assert.Equal(t, "Type:broadcast", textOf(inline[0]))
	assert.Equal(t, "Target:grid scope", textOf(inline[1]))

	assert.Subset(t, parent.Anchors, []string{"Methods", "addRows", "Properties", "rows", "Events", "rowsRendered"})
}

func TestHTML_EditAndSourceLinks(t *testing.T) {
	link := func(file string, line, codeline int) string {
		return fmt.Sprintf("https://github.com/angular-ui/ui-grid/blob/master/%s#L%d", file, codeline)
	}
	opts := &Options{EditLink: link, SourceLink: link, IsAPI: true}

	_, page := renderDoc(t, "@ngdoc service\n@name ui.grid.service:gridUtil", opts)

	edit := findAll(page, element("a", "improve-docs"))
	require.Len(t, edit, 1)
	assert.Equal(t, "https://github.com/angular-ui/ui-grid/blob/master/src/js/core/factories/Grid.js#L21", attr(edit[0], "href"))
	assert.Equal(t, " Improve this doc", textOf(edit[0]))

	source := findAll(page, element("a", "view-source"))
	require.Len(t, source, 1)

	opts.IsAPI = false
	_, page = renderDoc(t, "@ngdoc service\n@name ui.grid.service:gridUtil", opts)
	assert.Empty(t, findAll(page, element("a", "view-source")))
}

func TestHTML_Requires(t *testing.T) {
	_, page := renderDoc(t, `
@ngdoc service
@name ui.grid.service:rowSorter
@requires $q
@requires [gridUtil]{@link ui.grid.service:gridUtil}`, nil)

	var links []string
	for _, a := range findAll(page, element("a")) {
		links = append(links, attr(a, "href")+" "+textOf(a))
	}
	assert.Contains(t, links, "#!/api/ng.$q $q")
	assert.Contains(t, links, "#!/api/ui.grid.service:gridUtil gridUtil")
}

func TestHTML_Overview(t *testing.T) {
	d, page := renderDoc(t, "@ngdoc overview\n@name ui.grid\n@description Core grid module.", nil)

	assert.Contains(t, textOf(page), "Core grid module.")
	assert.NotContains(t, d.Anchors, "Description")
}

func TestRequireTarget(t *testing.T) {
	tests := []struct {
		ref, id, name string
	}{
		{"$compile", "ng.$compile", "$compile"},
		{"ui.grid.service:gridUtil", "ui.grid.service:gridUtil", "gridUtil"},
		{"[gridUtil]{@link ui.grid.service:gridUtil}", "ui.grid.service:gridUtil", "gridUtil"},
		{"{@link ui.grid.service:gridUtil utilities}", "ui.grid.service:gridUtil", "utilities"},
		{"{@link ui.grid.service:gridUtil}", "ui.grid.service:gridUtil", "gridUtil"},
	}
	for _, tt := range tests {
		id, name := requireTarget(tt.ref)
		assert.Equal(t, tt.id, id, tt.ref)
		assert.Equal(t, tt.name, name, tt.ref)
	}
}

func TestSplitTypes(t *testing.T) {
	assert.Equal(t, []string{"string", "number"}, splitTypes("string|number"))
	assert.Equal(t, []string{"Array.<string|number>", "Object"}, splitTypes("(Array.<string|number>|Object)"))
	assert.Equal(t, []string{"function()"}, splitTypes("function()"))
}

func TestDashCase(t *testing.T) {
	assert.Equal(t, "ui-grid-cell", dashCase("uiGridCell"))
	assert.Equal(t, "ng-model", dashCase("ngModel"))
}
