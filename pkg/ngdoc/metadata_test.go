package ngdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords(t *testing.T) {
	d := &Doc{Text: "Use $scope.watch carefully, use it"}
	assert.Equal(t, "$scope carefully it watch", d.Keywords(IgnoreWords{"use": true}))
}

func TestKeywords_DefaultIgnoreWords(t *testing.T) {
	d := &Doc{Text: "Use the $scope"}
	got := d.Keywords(DefaultIgnoreWords())
	assert.Contains(t, got, "$scope")
	assert.NotContains(t, got, "use")
	assert.NotContains(t, got, "the")
}

func TestKeywords_MembersAndErrors(t *testing.T) {
	d := &Doc{
		Name: "$http:badreq",
		Kind: KindError,
		Text: "bad request",
		Methods: []*Doc{
			{Text: "ng:include loader"},
		},
		Properties: []*Doc{
			{Description: "columnDefs"},
		},
	}
	assert.Equal(t, "$http bad badreq columndefs loader ng:include request", d.Keywords(nil))
}

func TestLoadIgnoreWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore.words")
	require.NoError(t, os.WriteFile(path, []byte("Foo, bar\nbaz"), 0o644))

	words, err := LoadIgnoreWords(path)
	require.NoError(t, err)
	assert.Equal(t, IgnoreWords{"foo": true, "bar": true, "baz": true}, words)

	_, err = LoadIgnoreWords(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNavShortName(t *testing.T) {
	tests := map[string]string{
		"ng.directive:input:checkbox": "input [checkbox]",
		"ui.grid.directive:uiGrid":    "uiGrid",
		"ui.grid.gridUtil":            "ui.grid.gridUtil",
		"$http: badreq":               "badreq",
	}
	for name, want := range tests {
		assert.Equal(t, want, navShortName(name), name)
	}
}

func TestMangleName(t *testing.T) {
	assert.Equal(t, "api/5.ng.5.$http", mangleName(Page{Section: "api", ID: "ng.$http"}))
	assert.Equal(t, "guide/9.dev_guide.3.mvc", mangleName(Page{Section: "guide", ID: "dev_guide.mvc"}))
	assert.Equal(t, "api/5.ui.5.grid", mangleName(Page{Section: "api", ID: "UI.Grid"}))
}

func TestMetadata(t *testing.T) {
	docs := []*Doc{
		{Section: "guide", ID: "zzz", Name: "Last"},
		{Section: "api", ID: "ng.$http", Name: "ng.$http", Kind: KindService, ModuleName: "ng", title: Title{Name: "$http"}},
		{Section: "guide", ID: "overview", Name: "Overview"},
		{Section: "guide", ID: "introduction", Name: "Introduction", Tags: map[string]string{"deprecated": "yes"}},
	}

	pages := Metadata(docs, nil)
	require.Len(t, pages, 4)

	var ids []string
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"introduction", "overview", "ng.$http", "zzz"}, ids)

	http := pages[2]
	assert.Equal(t, "$http", http.Name)
	assert.Equal(t, "ng.$http", http.ShortName)
	assert.Equal(t, "service", http.Type)
	assert.Equal(t, "ng", http.ModuleName)

	assert.Equal(t, "Last", pages[3].Name)
	assert.True(t, pages[0].IsDeprecated)
}
