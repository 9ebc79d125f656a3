package ngdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScenarios(t *testing.T) {
	docs := []*Doc{
		{Section: "tutorial", ID: "101_single_filter", Scenarios: []string{"  it('filters', function() {\n  });"}},
		{Section: "api", ID: "ui.grid"},
	}

	want := `describe("ui-grid", function() {
  describe("tutorial/101_single_filter", function() {
    beforeEach(function() {
      browser.driver.get("http://localhost:9000/docs/#!/tutorial/101_single_filter");
    });
  
    it('filters', function() {
    });

});

  describe("api/ui.grid", function() {
    beforeEach(function() {
      browser.driver.get("http://localhost:9000/docs/#!/api/ui.grid");
    });
  
});

});`

	assert.Equal(t, want, Scenarios(docs, "http://localhost:9000/docs/#!/"))
}

func TestScenarios_Empty(t *testing.T) {
	assert.Equal(t, "describe(\"ui-grid\", function() {\n});", Scenarios(nil, ""))
}
