package ngdoc

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/platinummonkey/uidocs/pkg/example"
)

const placeholderPrefix = "REPLACEME"

var (
	protectedSpan = regexp.MustCompile(`<pre.*?>[\s\S]*?</pre>|<doc:example\S*.*?>[\s\S]*?</doc:example>|<example[^>]*>[\s\S]*?</example>`)

	exampleBlock   = regexp.MustCompile(`(?i)<example(?:\s+module="([^"]*)")?(?:\s+deps="([^"]*)")?(\s+animations="true")?>([\s\S]*?)</example>`)
	exampleFile    = regexp.MustCompile(`(?i)<file\s+name="([^"]*)"\s*>([\s\S]*?)</file>`)
	exampleFileSrc = regexp.MustCompile(`(?i)<file\s+src="([^"]+)"(?:\s+tag="([^"]+)")?(?:\s+name="([^"]+)")?\s*/?>`)
	inlineFile     = regexp.MustCompile(`(?i)(?:\*\s+)?<file.+?src="([^"]+)"(?:\s+tag="([^"]+)")?\s*/?>`)
	allDocsRegion  = regexp.MustCompile(`(?im)//<docs.*?>([.\s\S]+)//</docs>`)

	legacyExample  = regexp.MustCompile(`(?mi)^<doc:example(\s+[^>]*)?>([\s\S]*)</doc:example>`)
	legacyModule   = regexp.MustCompile(`^\s*module=["'](.*)["']\s*$`)
	legacySource   = regexp.MustCompile(`(?mi)<doc:source(\s+[^>]*)?>([\s\S]*)</doc:source>`)
	legacyScript   = regexp.MustCompile(`(?mi)<script>([\s\S]*)</script>`)
	legacyStyle    = regexp.MustCompile(`(?mi)<style>([\s\S]*)</style>`)
	legacyScenario = regexp.MustCompile(`(?mi)<doc:scenario>([\s\S]*)</doc:scenario>`)

	preBlock    = regexp.MustCompile(`(?mi)^<pre(.*?)>([\s\S]*?)</pre>`)
	emptyDiv    = regexp.MustCompile(`<div([^>]*)></div>`)
	linkMarkup  = regexp.MustCompile(`\{@link\s+([^\s}]+)\s*([^}]*?)\s*\}`)
	typeMarkup  = regexp.MustCompile(`\{@type\s+(\S+)(?:\s+(\S+))?\}`)
	installMark = regexp.MustCompile(`\{@installModule\s+(\S+)?\}`)
	codeFence   = regexp.MustCompile("(?mi)^```([+-]?)([a-z]*)([\\s\\S]*?)```")

	restorePlaceholder = regexp.MustCompile(`(?:<p>)?(` + placeholderPrefix + `\d+)(?:</p>)?`)
	annotateDirective  = regexp.MustCompile(`(?im)\n?//!annotate\s*(?:=\s*['"](.+?)['"])?\s+(.+?)\n\s*(.+?\n)`)
	detailsDirective   = regexp.MustCompile(`(?im)//!details\s*(?:=\s*['"](.+?)['"])?\s+(.+?)\n\s*(.+?\n)`)

	isURL       = regexp.MustCompile(`^(https?://|ftps?://|mailto:|\.|/)`)
	isAngular   = regexp.MustCompile(`(?i)^(api/)?(angular|ng|AUTO)\.`)
	typeWord    = regexp.MustCompile(`^[-\w]+`)
	pageName    = regexp.MustCompile(`^\s*(.+?)\s*:\s*(.+)`)
	nonWordRuns = regexp.MustCompile(`[_\W]+`)
)

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// markup holds the state of one Markdown call. Placeholders never outlive it.
type markup struct {
	doc          *Doc
	opts         *Options
	placeholders map[string]string
	seq          int
	err          error
}

// Markdown converts a free-text field to HTML. Example blocks, pre blocks and
// highlighted fences are shielded from the Markdown engine, links are
// recorded in d.Links and example scenarios in d.Scenarios.
func (d *Doc) Markdown(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	m := &markup{
		doc:          d,
		opts:         d.opts(),
		placeholders: make(map[string]string),
	}

	var b strings.Builder
	for _, chunk := range splitProtected(Trim(text)) {
		b.WriteString(m.chunk(chunk))
		if m.err != nil {
			return "", m.err
		}
	}

	html := m.restore(`<div class="` + pageClassName(d.Name) + `">` +
		m.opts.Markdown.Render(b.String()) +
		`</div>`)

	html, err := m.annotate(html)
	if err != nil {
		return "", err
	}
	return m.details(html)
}

// splitProtected cuts text at the boundaries of pre and example blocks.
// Protected spans come back as their own chunks.
func splitProtected(text string) []string {
	var chunks []string
	last := 0
	for _, loc := range protectedSpan.FindAllStringIndex(text, -1) {
		chunks = append(chunks, text[last:loc[0]], text[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(chunks, text[last:])
}

func (m *markup) placeholder(html string) string {
	id := fmt.Sprintf("%s%d", placeholderPrefix, m.seq)
	m.seq++
	m.placeholders[id] = html
	return id
}

func (m *markup) restore(html string) string {
	return replaceSubmatch(restorePlaceholder, html, -1, func(g []string) string {
		if v, ok := m.placeholders[g[1]]; ok {
			return v
		}
		return g[0]
	})
}

func (m *markup) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

// chunk applies the inline rewrites to one chunk, in order
func (m *markup) chunk(text string) string {
	text = replaceSubmatch(exampleBlock, text, -1, m.example)
	text = replaceSubmatch(inlineFile, text, 1, m.inlineFile)
	text = replaceSubmatch(legacyExample, text, 1, m.legacyExample)
	text = replaceSubmatch(preBlock, text, 1, func(g []string) string {
		return m.placeholder(`<pre` + g[1] + ` class="prettyprint linenums">` + angleEscaper.Replace(g[2]) + `</pre>`)
	})
	if loc := emptyDiv.FindStringSubmatchIndex(text); loc != nil {
		text = text[:loc[0]] + `<div` + text[loc[2]:loc[3]] + ">\n</div>" + text[loc[1]:]
	}
	text = replaceSubmatch(linkMarkup, text, -1, m.link)
	text = replaceSubmatch(typeMarkup, text, -1, func(g []string) string {
		url := g[2]
		if url == "" {
			url = "#"
		}
		return `<a href="` + url + `" class="` + typeHintClass(g[1]) + `">` + g[1] + `</a>`
	})
	text = replaceSubmatch(installMark, text, -1, func(g []string) string {
		return explainModuleInstallation(g[1])
	})
	if m.opts.HighlightCodeFences {
		text = replaceSubmatch(codeFence, text, -1, m.fence)
	}
	return text
}

func (m *markup) example(g []string) string {
	ex := example.New(&m.doc.Scenarios, m.opts.Examples)
	if g[3] != "" {
		ex.EnableAnimations()
		ex.AddDeps(example.AnimateDep)
	}
	ex.SetModule(g[1])
	ex.AddDeps(g[2])

	content := g[4]
	for _, f := range exampleFile.FindAllStringSubmatch(content, -1) {
		ex.AddSource(f[1], f[2])
	}
	for _, f := range exampleFileSrc.FindAllStringSubmatch(content, -1) {
		src, ok := m.readSource(f[1], f[2])
		if !ok || src == "" {
			continue
		}
		name := f[3]
		if name == "" {
			name = filepath.Base(f[1])
		}
		ex.AddSource(name, src)
	}
	return m.placeholder(ex.ToHTML())
}

func (m *markup) inlineFile(g []string) string {
	src, _ := m.readSource(g[1], g[2])
	return src
}

// readSource reads an included file, narrowed to a //<docs> region when tag is set
func (m *markup) readSource(path, tag string) (string, bool) {
	content, ok, err := m.opts.Sources.ReadSource(path)
	if err != nil {
		m.fail(fmt.Errorf("reading included file %s: %w", path, err))
		return "", false
	}
	if !ok {
		return "", false
	}
	if tag != "" {
		content = extractInlineDocCode(content, tag)
	}
	return content, true
}

// extractInlineDocCode returns the region between //<docs tag="tag"> and
// //</docs>. The tag "all" spans from the first opening to the last closing marker.
func extractInlineDocCode(text, tag string) string {
	re := allDocsRegion
	if tag != "all" {
		re = regexp.MustCompile(`(?im)//<docs\s*tag="` + regexp.QuoteMeta(tag) + `".*?>([.\s\S]+?)//</docs>`)
	}
	if g := re.FindStringSubmatch(text); g != nil {
		return g[1]
	}
	return ""
}

func (m *markup) legacyExample(g []string) string {
	ex := example.New(&m.doc.Scenarios, m.opts.Examples)
	if mod := legacyModule.FindStringSubmatch(g[1]); mod != nil {
		ex.SetModule(mod[1])
	}

	content := g[2]
	if src := legacySource.FindStringSubmatch(content); src != nil {
		html := replaceSubmatch(legacyScript, src[2], 1, func(s []string) string {
			ex.AddSource("script.js", s[1])
			return ""
		})
		html = replaceSubmatch(legacyStyle, html, 1, func(s []string) string {
			ex.AddSource("style.css", s[1])
			return ""
		})
		ex.AddSource("index.html", html)
	}
	if sc := legacyScenario.FindStringSubmatch(content); sc != nil {
		ex.AddSource("scenario.js", sc[1])
	}
	return m.placeholder(ex.ToHTML())
}

func (m *markup) link(g []string) string {
	url, title := g[1], g[2]

	var href string
	switch {
	case isURL.MatchString(url):
		href = url
	case strings.HasPrefix(url, "#"):
		href = url
		m.doc.Links = append(m.doc.Links, url)
	default:
		resolved := m.doc.resolveLink(url)
		m.doc.Links = append(m.doc.Links, resolved)
		href = m.opts.routePrefix() + resolved
	}

	if title == "" {
		title = url
	}
	title = strings.ReplaceAll(strings.TrimPrefix(title, "#"), "\n", " ")
	if isAngular.MatchString(url) {
		title = "<code>" + title + "</code>"
	}
	return `<a href="` + href + `">` + title + `</a>`
}

func (m *markup) fence(g []string) string {
	class := "prettyprint linenums"
	switch g[1] {
	case "+":
		class += " alert alert-success"
	case "-":
		class += " alert alert-danger"
	}
	if g[2] != "" {
		class += " lang-" + g[2]
	}
	return m.placeholder(`<pre class="` + class + `">` + angleEscaper.Replace(g[3]) + `</pre>`)
}

// annotate expands //!annotate="pattern" title|text directives into popovers
// around the first match of pattern on the following line
func (m *markup) annotate(html string) (string, error) {
	return replaceDirective(annotateDirective, html, func(g []string, re *regexp.Regexp) string {
		title, text := "Info", g[2]
		if parts := strings.Split(g[2], "|"); len(parts) > 1 {
			title, text = parts[0], parts[1]
		}
		return "\n" + replaceFirst(re, g[3], func(match string) string {
			return `<div class="nocode nocode-content" data-popover data-content="` + text + `" data-title="` + title + `">` + match + `</div>`
		})
	})
}

// details expands //!details="pattern" path directives into foldouts pointing
// below the notes prefix
func (m *markup) details(html string) (string, error) {
	return replaceDirective(detailsDirective, html, func(g []string, re *regexp.Regexp) string {
		url := m.opts.NotesPrefix + g[2]
		return replaceFirst(re, g[3], func(match string) string {
			return `<div class="nocode nocode-content" data-foldout data-url="` + url + `">` + match + `</div>`
		})
	})
}

func replaceDirective(directive *regexp.Regexp, html string, expand func(g []string, re *regexp.Regexp) string) (string, error) {
	var err error
	out := replaceSubmatch(directive, html, -1, func(g []string) string {
		pattern := g[1]
		if pattern == "" {
			pattern = ".+"
		}
		re, cerr := regexp.Compile(pattern)
		if cerr != nil {
			if err == nil {
				err = fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, cerr)
			}
			return g[0]
		}
		return expand(g, re)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// ConvertURLToAbsolute qualifies a relative url with the doc's section and
// the routing prefix. Absolute urls are returned unchanged.
func (d *Doc) ConvertURLToAbsolute(url string) string {
	if isURL.MatchString(url) {
		return url
	}
	return d.opts().routePrefix() + d.resolveLink(url)
}

// resolveLink returns the section-qualified target of a relative url. The
// hash part is lower-cased to match generated anchors.
func (d *Doc) resolveLink(url string) string {
	if i := strings.Index(url, "#"); i >= 0 {
		url = url[:i] + strings.ToLower(url[i:])
	}
	switch {
	case strings.HasSuffix(url, "/"):
		return url + "index"
	case strings.Contains(url, "/"):
		return url
	}
	return d.Section + "/" + url
}

func typeHintClass(typ string) string {
	class := typeWord.FindString(strings.ToLower(typ))
	if class == "" {
		class = "object"
	}
	return "label type-hint type-hint-" + class
}

func prepareClassName(text string) string {
	return nonWordRuns.ReplaceAllString(strings.ToLower(text), "-")
}

// pageClassName encodes the doc name in the class of the wrapping div
func pageClassName(name string) string {
	const suffix = "-page"
	if g := pageName.FindStringSubmatch(name); g != nil {
		before := prepareClassName(g[1])
		return before + suffix + " " + before + "-" + prepareClassName(g[2]) + suffix
	}
	if name == "" {
		name = "docs"
	}
	return prepareClassName(name) + suffix
}

func explainModuleInstallation(moduleName string) string {
	ngMod := "ng"
	if moduleName != "" {
		ngMod += strings.ToUpper(moduleName[:1]) + moduleName[1:]
	}
	pkg := "angular-" + moduleName
	file := pkg + ".js"

	return `<h1>Installation</h1>` +
		`<p>First include <code>` + file + `</code> in your HTML:</p><pre><code>` +
		`    &lt;script src=&quot;angular.js&quot;&gt;` + "\n" +
		`    &lt;script src=&quot;` + file + `&quot;&gt;</code></pre>` +
		`<p>You can download this file from the following places:</p>` +
		`<ul>` +
		`<li><a href="https://developers.google.com/speed/libraries/devguide#angularjs">Google CDN</a><br>` +
		`e.g. <code>"//ajax.googleapis.com/ajax/libs/angularjs/X.Y.Z/` + file + `"</code></li>` +
		`<li><a href="http://bower.io">Bower</a><br>` +
		`e.g. <code>bower install ` + pkg + `@X.Y.Z</code></li>` +
		`<li><a href="http://code.angularjs.org/">code.angularjs.org</a><br>` +
		`e.g. <code>"//code.angularjs.org/X.Y.Z/` + file + `"</code></li>` +
		`</ul>` +
		`<p>where X.Y.Z is the AngularJS version you are running.</p>` +
		`<p>Then load the module in your application by adding it as a dependent module:</p><pre><code>` +
		`    angular.module('app', ['` + ngMod + `']);</code></pre>` +
		`<p>With that you're ready to get started!</p>`
}

// replaceSubmatch replaces at most n matches of re in src (all when n < 0)
// with the result of repl, which receives the match and its groups.
// Unmatched groups are empty strings.
func replaceSubmatch(re *regexp.Regexp, src string, n int, repl func(g []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, n)
	if matches == nil {
		return src
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		g := make([]string, len(loc)/2)
		for i := range g {
			if loc[2*i] >= 0 {
				g[i] = src[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(repl(g))
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

func replaceFirst(re *regexp.Regexp, src string, repl func(match string) string) string {
	return replaceSubmatch(re, src, 1, func(g []string) string { return repl(g[0]) })
}
