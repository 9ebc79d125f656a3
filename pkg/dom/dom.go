// Package dom provides the imperative HTML builder used to render documentation pages.
//
// A DOM accumulates markup in order. Headings nest: every call to one of the H
// methods increases the heading level for the markup produced by its body, and
// registers an anchor id derived from the heading text so that other pages can
// link to it.
//
// Usage:
//
//	d := dom.New()
//	d.H("Usage", func(d *dom.DOM) {
//		d.Code(func(d *dom.DOM) { d.Text("watch(fn)") })
//	})
//	page := d.String()
//	anchors := d.Anchors()
package dom

import (
	"regexp"
	"strconv"
	"strings"
)

// maxHeadingLevel is the deepest heading element HTML offers.
const maxHeadingLevel = 6

var (
	parenGroup   = regexp.MustCompile(`\(.*\)`)
	nonIDChars   = regexp.MustCompile(`[^\d\w$]`)
	dashRuns     = regexp.MustCompile(`-+`)
	trailingJunk = regexp.MustCompile(`[-.]*$`)
	classChars   = regexp.MustCompile(`[._]+`)
)

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Attr is a single element attribute. Attributes are emitted in slice order.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an ordered attribute list
type Attrs []Attr

// Body produces the content of an element
type Body func(d *DOM)

// DOM builds an HTML fragment
type DOM struct {
	out          strings.Builder
	headingDepth int
	anchors      []string
}

// New creates an empty builder
func New() *DOM {
	return &DOM{}
}

// String returns the markup produced so far
func (d *DOM) String() string {
	return d.out.String()
}

// Anchors returns the anchor ids registered by headings, in emission order
func (d *DOM) Anchors() []string {
	out := make([]string, len(d.anchors))
	copy(out, d.anchors)
	return out
}

// Escape escapes text for inclusion in element content
func Escape(text string) string {
	return textEscaper.Replace(text)
}

// Text emits escaped text
func (d *DOM) Text(text string) {
	if text == "" {
		return
	}
	d.out.WriteString(Escape(text))
}

// HTML emits markup verbatim
func (d *DOM) HTML(html string) {
	if html == "" {
		return
	}
	d.out.WriteString(html)
}

// Tag emits an element whose content is produced by body
func (d *DOM) Tag(name string, attrs Attrs, body Body) {
	d.open(name, attrs)
	if body != nil {
		body(d)
	}
	d.close(name)
}

// TagText emits an element containing escaped text
func (d *DOM) TagText(name string, attrs Attrs, text string) {
	d.open(name, attrs)
	d.Text(text)
	d.close(name)
}

// Div emits a div element
func (d *DOM) Div(attrs Attrs, body Body) {
	d.Tag("div", attrs, body)
}

// Code emits a preformatted code block
func (d *DOM) Code(body Body) {
	d.Tag("pre", Attrs{{Key: "class", Value: "prettyprint linenums"}}, body)
}

// UL emits an unordered list of escaped items
func (d *DOM) UL(items []string) {
	d.Tag("ul", nil, func(d *DOM) {
		for _, item := range items {
			d.out.WriteString("<li>")
			d.Text(item)
			d.out.WriteString("</li>\n")
		}
	})
}

// H emits a heading followed by a div holding the content produced by body.
// A nil body emits nothing.
func (d *DOM) H(heading string, body Body) {
	if body == nil {
		return
	}
	d.heading(heading, func(d *DOM, class Attrs) {
		d.Div(class, body)
	})
}

// HText emits a heading followed by escaped text. Empty text emits nothing.
func (d *DOM) HText(heading, text string) {
	if text == "" {
		return
	}
	d.H(heading, func(d *DOM) { d.Text(text) })
}

// HHTML emits a heading followed by trusted markup. Empty markup emits nothing.
func (d *DOM) HHTML(heading, html string) {
	if html == "" {
		return
	}
	d.H(heading, func(d *DOM) { d.HTML(html) })
}

// HList emits a heading followed by a list with one item per index.
// A zero count emits nothing.
func (d *DOM) HList(heading string, count int, item func(d *DOM, i int)) {
	if count == 0 {
		return
	}
	d.heading(heading, func(d *DOM, class Attrs) {
		d.Tag("ul", class, func(d *DOM) {
			for i := 0; i < count; i++ {
				d.out.WriteString("<li>")
				item(d, i)
				d.out.WriteString("</li>\n")
			}
		})
	})
}

// HFunc emits a heading whose content is markup produced by title. Headings
// built this way register no anchor.
func (d *DOM) HFunc(title Body, body Body) {
	if body == nil {
		return
	}
	d.headingDepth++
	defer func() { d.headingDepth-- }()
	d.Tag(d.headingTag(), nil, title)
	d.Div(nil, body)
}

func (d *DOM) heading(text string, content func(d *DOM, class Attrs)) {
	d.headingDepth++
	defer func() { d.headingDepth-- }()

	id := AnchorID(text)
	var attrs, class Attrs
	if id != "" {
		d.anchors = append(d.anchors, id)
		attrs = Attrs{{Key: "id", Value: id}}
		class = Attrs{{Key: "class", Value: classChars.ReplaceAllString(strings.ToLower(id), "-")}}
	}
	d.TagText(d.headingTag(), attrs, text)
	content(d, class)
}

func (d *DOM) headingTag() string {
	level := d.headingDepth
	if level > maxHeadingLevel {
		level = maxHeadingLevel
	}
	return "h" + strconv.Itoa(level)
}

func (d *DOM) open(name string, attrs Attrs) {
	d.out.WriteString("<")
	d.out.WriteString(name)
	for _, a := range attrs {
		d.out.WriteString(" ")
		d.out.WriteString(a.Key)
		d.out.WriteString(`="`)
		d.out.WriteString(attrEscaper.Replace(a.Value))
		d.out.WriteString(`"`)
	}
	d.out.WriteString(">")
}

func (d *DOM) close(name string) {
	d.out.WriteString("</")
	d.out.WriteString(name)
	d.out.WriteString(">")
}

// AnchorID derives the anchor id of a heading: parenthesized groups are dropped,
// characters outside [0-9A-Za-z_$] become dots, runs of dashes collapse and
// trailing separators are removed.
func AnchorID(heading string) string {
	id := parenGroup.ReplaceAllString(heading, "")
	id = strings.TrimSpace(id)
	id = nonIDChars.ReplaceAllString(id, ".")
	id = dashRuns.ReplaceAllString(id, "-")
	return trailingJunk.ReplaceAllString(id, "")
}
