package example

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExample_ScenarioSourcesAreRecorded(t *testing.T) {
	var scenarios []string
	ex := New(&scenarios, nil)

	ex.AddSource("index.html", "<div>hi</div>")
	ex.AddSource("scenario.js", "it('works', function() {});")
	ex.AddSource("protractor.js", "it('also works', function() {});")

	require.Len(t, scenarios, 2)
	assert.Equal(t, "it('works', function() {});", scenarios[0])
	assert.Equal(t, "it('also works', function() {});", scenarios[1])
}

func TestExample_Deps(t *testing.T) {
	ex := New(nil, nil)
	ex.AddDeps("a.js;b.js, c.js")
	ex.AddDeps("")
	ex.AddSource("script.js", "var x;")
	ex.AddSource("spec.js", "describe()")

	assert.Equal(t, []string{"angular.js", "a.js", "b.js", "c.js", "script.js"}, ex.Deps())
}

func TestExample_SetModuleIgnoresEmpty(t *testing.T) {
	ex := New(nil, nil)
	ex.SetModule("app")
	ex.SetModule("")
	assert.Equal(t, "app", ex.Module())
}

func TestExample_ToHTML(t *testing.T) {
	seq := &Sequence{}
	first := New(nil, seq)
	second := New(nil, seq)

	second.SetModule("demo")
	second.EnableAnimations()
	second.AddSource("index.html", "<p>{{x}}</p>")
	second.AddSource("style.css", ".a {}")

	html := second.ToHTML()
	assert.Contains(t, html, `source-edit="demo"`)
	assert.Contains(t, html, `source-edit-html="index.html-2"`)
	assert.Contains(t, html, `source-edit-css="style.css-2"`)
	assert.Contains(t, html, `<script type="text/ng-template" id="index.html-2"><p>{{x}}</p></script>`)
	assert.Contains(t, html, `class="well doc-example-live animate-container"`)
	assert.Contains(t, first.ToHTML(), `source-edit-html=""`)
}
