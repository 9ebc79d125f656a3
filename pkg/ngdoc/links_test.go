package ngdoc

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkDocs(links ...string) []*Doc {
	grid := &Doc{
		Name:    "ui.grid.class:Grid",
		ID:      "ui.grid.class:Grid",
		Section: "api",
		File:    "src/js/core/factories/Grid.js",
		Anchors: []string{"addRows"},
		Links:   links,
	}
	intro := &Doc{Name: "Intro", ID: "intro", Section: "tutorial", File: "misc/tutorial/intro.ngdoc"}
	return []*Doc{grid, intro}
}

func TestCheckBrokenLinks(t *testing.T) {
	log, hook := test.NewNullLogger()
	docs := linkDocs(
		"api/ui.grid.class:Grid#addRows",
		"api/ui.grid.class:Grid#ADDROWS",
		"#addRows",
		"#!/api/ui.grid.class:Grid",
		"/tutorial/intro",
		"api/ui.grid.class:Grid#directive",
		"api/missing",
		"api/ui.grid.class:Grid#nope",
		"tutorial/intro#directive",
	)

	warnings := CheckBrokenLinks(docs, map[string]bool{"api": true}, LinkOptions{}, log)

	require.Len(t, warnings, 3)
	assert.Equal(t, LinkWarning{
		Doc:    "api/ui.grid.class:Grid",
		File:   "src/js/core/factories/Grid.js",
		Link:   "api/missing",
		Reason: ReasonMissingPage,
	}, warnings[0])
	assert.Equal(t, "api/ui.grid.class:Grid#nope", warnings[1].Link)
	assert.Equal(t, ReasonMissingAnchor, warnings[1].Reason)
	assert.Equal(t, "tutorial/intro#directive", warnings[2].Link)
	assert.Equal(t, ReasonMissingAnchor, warnings[2].Reason)

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "broken documentation link", entries[0].Message)
	assert.Equal(t, "api/missing", entries[0].Data["link"])
	assert.Equal(t, ReasonMissingPage, entries[0].Data["reason"])
	assert.Equal(t, "src/js/core/factories/Grid.js", entries[0].Data["file"])
}

func TestCheckBrokenLinks_DefaultAnchorsAddedOnce(t *testing.T) {
	log, _ := test.NewNullLogger()
	docs := linkDocs()
	docs[0].Anchors = append(docs[0].Anchors, "Directive")

	CheckBrokenLinks(docs, map[string]bool{"api": true}, LinkOptions{}, log)
	CheckBrokenLinks(docs, map[string]bool{"api": true}, LinkOptions{}, log)

	assert.Equal(t, []string{"addRows", "Directive", "service", "filter", "function"}, docs[0].Anchors)
	assert.Empty(t, docs[1].Anchors)
}

func TestCheckBrokenLinks_HTML5Mode(t *testing.T) {
	log, hook := test.NewNullLogger()
	docs := linkDocs("/api/ui.grid.class:Grid", "!/api/ui.grid.class:Grid")

	warnings := CheckBrokenLinks(docs, nil, LinkOptions{HTML5Mode: true}, log)

	require.Len(t, warnings, 1)
	assert.Equal(t, "!/api/ui.grid.class:Grid", warnings[0].Link)
	assert.Len(t, hook.Entries, 1)
}

func TestCheckBrokenLinks_CustomPrefix(t *testing.T) {
	log, _ := test.NewNullLogger()
	docs := linkDocs("#/api/ui.grid.class:Grid")

	warnings := CheckBrokenLinks(docs, nil, LinkOptions{LinkPrefix: "#"}, log)
	assert.Empty(t, warnings)
}

func TestCheckBrokenLinks_AfterRender(t *testing.T) {
	log, _ := test.NewNullLogger()

	target := parseDoc(t, "@ngdoc service\n@name ui.grid.service:gridUtil\n@description utilities", nil)
	_, err := target.HTML()
	require.NoError(t, err)

	source := parseDoc(t, "@ngdoc service\n@name ui.grid.service:rowSorter\n@description see {@link ui.grid.service:gridUtil} and {@link ui.grid.service:gone}", nil)
	_, err = source.HTML()
	require.NoError(t, err)

	warnings := CheckBrokenLinks([]*Doc{target, source}, map[string]bool{"api": true}, LinkOptions{}, log)
	require.Len(t, warnings, 1)
	assert.Equal(t, "api/ui.grid.service:gone", warnings[0].Link)
	assert.Equal(t, ReasonMissingPage, warnings[0].Reason)
}
