// Package markdown renders whole documents from Markdown to HTML.
//
// The engine is configured for documentation pages: GitHub-style tables and
// fenced code are enabled, raw HTML passes through untouched, and headings are
// rendered without generated id attributes so the page builder stays the only
// source of anchors.
package markdown

import (
	"fmt"
	"io"

	"github.com/russross/blackfriday/v2"
)

// Renderer converts Markdown text to HTML
type Renderer interface {
	Render(text string) string
}

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.BackslashLineBreak

// Engine is the blackfriday backed Renderer
type Engine struct {
	params blackfriday.HTMLRendererParameters
}

// NewEngine creates a Markdown engine
func NewEngine() *Engine {
	return &Engine{
		params: blackfriday.HTMLRendererParameters{
			Flags: blackfriday.HTMLFlagsNone,
		},
	}
}

// Render converts text to HTML
func (e *Engine) Render(text string) string {
	if text == "" {
		return ""
	}
	out := blackfriday.Run([]byte(text),
		blackfriday.WithExtensions(extensions),
		blackfriday.WithRenderer(&headingRenderer{HTMLRenderer: blackfriday.NewHTMLRenderer(e.params)}),
	)
	return string(out)
}

// headingRenderer writes plain <hN> tags and defers everything else to the
// stock HTML renderer.
type headingRenderer struct {
	*blackfriday.HTMLRenderer
}

func (r *headingRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if node.Type != blackfriday.Heading || node.IsTitleblock {
		return r.HTMLRenderer.RenderNode(w, node, entering)
	}
	if entering {
		fmt.Fprintf(w, "<h%d>", node.Level)
	} else {
		fmt.Fprintf(w, "</h%d>\n", node.Level)
	}
	return blackfriday.GoToNext
}

func (r *headingRenderer) RenderHeader(w io.Writer, ast *blackfriday.Node) {
	r.HTMLRenderer.RenderHeader(w, ast)
}

func (r *headingRenderer) RenderFooter(w io.Writer, ast *blackfriday.Node) {
	r.HTMLRenderer.RenderFooter(w, ast)
}
