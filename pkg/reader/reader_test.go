package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridJS = `(function () {
  'use strict';

  /**
   * @ngdoc service
   * @name ui.grid.service:gridUtil
   *
   * @description Grid utilities
   */
  angular.module('ui.grid').service('gridUtil', function () {});

  /**
   * A plain comment without the tag
   */
  var x = 1;

  /** @ngdoc function
   * @name ui.grid.service:gridUtil#debounce
   */
})();
`

func TestParseJS(t *testing.T) {
	blocks := ParseJS(gridJS, "src/js/core/services/ui-grid-util.js")
	require.Len(t, blocks, 2)

	assert.Equal(t, Block{
		Text:      "@ngdoc service\n@name ui.grid.service:gridUtil\n\n@description Grid utilities",
		File:      "src/js/core/services/ui-grid-util.js",
		StartLine: 4,
		EndLine:   9,
	}, blocks[0])

	assert.Equal(t, "@ngdoc function\n@name ui.grid.service:gridUtil#debounce", blocks[1].Text)
	assert.Equal(t, 17, blocks[1].StartLine)
	assert.Equal(t, 19, blocks[1].EndLine)
}

func TestParseJS_WindowsLineEndings(t *testing.T) {
	blocks := ParseJS("/**\r\n * @ngdoc overview\r\n * @name ui.grid\r\n */\r\n", "a.js")
	require.Len(t, blocks, 1)
	assert.Equal(t, "@ngdoc overview\n@name ui.grid", blocks[0].Text)
}

func TestParseJS_SingleLineComment(t *testing.T) {
	assert.Empty(t, ParseJS("/** @ngdoc service */", "a.js"))
}

func TestParseJS_Unterminated(t *testing.T) {
	assert.Empty(t, ParseJS("/**\n * @ngdoc service\n * @name x\n", "a.js"))
}

func TestParseDoc(t *testing.T) {
	b := ParseDoc("@ngdoc overview\n@name Tutorial\n\nText", "misc/tutorial/intro.ngdoc")
	assert.Equal(t, "@ngdoc overview\n@name Tutorial\n\nText", b.Text)
	assert.Equal(t, 1, b.StartLine)
	assert.Equal(t, 4, b.EndLine)
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReader_Section(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/js/core/services/ui-grid-util.js", gridJS)
	writeFile(t, root, "src/js/core/directives/ui-grid.js", "var plain = true;\n")
	writeFile(t, root, "src/less/grid.less", ".grid {}")
	writeFile(t, root, "misc/tutorial/101_intro.ngdoc", "@ngdoc overview\n@name Intro")
	writeFile(t, root, "misc/tutorial/102_more.uidoc", "@ngdoc overview\n@name More")
	writeFile(t, root, "misc/tutorial/notes.txt", "not docs")

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	r := New(root, log)

	api, err := r.Section("api", []string{"src/**/*.js", "src/**/*.less"})
	require.NoError(t, err)
	require.Len(t, api, 2)
	for _, b := range api {
		assert.Equal(t, "api", b.Section)
		assert.Equal(t, "src/js/core/services/ui-grid-util.js", b.File)
	}
	assert.NotEmpty(t, hook.AllEntries())

	tutorial, err := r.Section("tutorial", []string{"misc/tutorial/*.uidoc", "misc/tutorial/*.ngdoc", "misc/tutorial/*.ngdoc"})
	require.NoError(t, err)
	require.Len(t, tutorial, 2)
	assert.Equal(t, "misc/tutorial/102_more.uidoc", tutorial[0].File)
	assert.Equal(t, "misc/tutorial/101_intro.ngdoc", tutorial[1].File)
	assert.Equal(t, "tutorial", tutorial[1].Section)
}

func TestReader_Find(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.js", "")
	writeFile(t, root, "src/sub/b.js", "")
	writeFile(t, root, "src/sub/deep/c.js", "")

	r := New(root, nil)

	files, err := r.Find([]string{"src/*.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js"}, files)

	files, err = r.Find([]string{"src/**/*.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/sub/b.js", "src/sub/deep/c.js"}, files)

	files, err = r.Find([]string{"src/sub/**/*.js", "src/*.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/sub/b.js", "src/sub/deep/c.js", "src/a.js"}, files)

	files, err = r.Find([]string{"src/**.js"})
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.js", "src/sub/b.js", "src/sub/deep/c.js"}, files)

	_, err = r.Find(nil)
	assert.ErrorIs(t, err, ErrNoPatterns)
}

func TestExpandPattern(t *testing.T) {
	assert.Equal(t, []string{"src/*.js"}, expandPattern("src/*.js"))
	assert.Equal(t, []string{"src/**/*.js", "src/*.js"}, expandPattern("src/**/*.js"))
	assert.Equal(t, []string{"a/**/b/**/c", "a/b/c"}, expandPattern("a/**/b/**/c"))
}

func TestReadFile_Unsupported(t *testing.T) {
	_, err := ReadFile("notes.txt", "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}
