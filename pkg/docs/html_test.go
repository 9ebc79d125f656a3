package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/platinummonkey/uidocs/pkg/config"
	"github.com/platinummonkey/uidocs/pkg/ngdoc"
)

func links(t *testing.T, page string) map[string]string {
	t.Helper()
	root, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)

	out := make(map[string]string)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && n.FirstChild != nil {
					out[n.FirstChild.Data] = a.Val
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestIndexExporter_Export(t *testing.T) {
	exporter := NewIndexExporter()

	sections := []config.Section{
		{Name: "tutorial", Title: "Tutorial"},
		{Name: "api"},
		{Name: "empty", Title: "Nothing Here"},
	}
	pages := []ngdoc.Page{
		{Section: "api", ID: "ui.grid.class:Grid", ShortName: "Grid", Type: "object", ModuleName: "ui.grid", ShortDescription: "The grid"},
		{Section: "tutorial", ID: "101_intro", ShortName: "Intro", IsDeprecated: true},
	}

	page, err := exporter.Export("UI Grid <docs>", sections, pages)
	require.NoError(t, err)

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>UI Grid &lt;docs&gt;</title>")
	assert.NotContains(t, page, "Nothing Here")
	assert.Contains(t, page, `<span class="deprecated">deprecated</span>`)

	got := links(t, page)
	assert.Equal(t, "partials/api/ui.grid.class:Grid.html", got["Grid"])
	assert.Equal(t, "partials/tutorial/101_intro.html", got["Intro"])
	assert.Equal(t, "#tutorial", got["Tutorial"])
	assert.Equal(t, "#api", got["api"])

	assert.Less(t, strings.Index(page, `id="tutorial"`), strings.Index(page, `id="api"`))
}

func TestIndexExporter_NoPages(t *testing.T) {
	page, err := NewIndexExporter().Export("Docs", []config.Section{{Name: "api"}}, nil)
	require.NoError(t, err)
	assert.Contains(t, page, "No documentation pages.")
}

func TestGroupPages(t *testing.T) {
	pages := []ngdoc.Page{
		{Section: "api", ID: "b"},
		{Section: "guide", ID: "g"},
		{Section: "api", ID: "a"},
		{Section: "unlisted", ID: "u"},
	}
	groups := groupPages([]config.Section{{Name: "guide"}, {Name: "api", Title: "API"}}, pages)

	require.Len(t, groups, 2)
	assert.Equal(t, "guide", groups[0].Title)
	assert.Equal(t, "API", groups[1].Title)
	assert.Equal(t, []ngdoc.Page{{Section: "api", ID: "b"}, {Section: "api", ID: "a"}}, groups[1].Pages)
}

func TestToAnchor(t *testing.T) {
	assert.Equal(t, "getting-started", toAnchor("Getting Started"))
}

func TestNewSetup(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Title = "UI Grid"
	cfg.HTML5Mode = true
	cfg.Sections = []config.Section{{Name: "tutorial", Title: "Tutorial"}, {Name: "api", API: true}}

	setup := NewSetup(cfg, nil)
	assert.Equal(t, "UI Grid", setup.Title)
	assert.True(t, setup.HTML5Mode)
	assert.Equal(t, "/tutorial", setup.StartPage)
	assert.Equal(t, []SetupSection{
		{Name: "tutorial", Title: "Tutorial"},
		{Name: "api", Title: "api", API: true},
	}, setup.Sections)
	assert.NotNil(t, setup.Pages)
}
