package ngdoc

import "strings"

// ScenarioSuite is the name of the outer describe block of the scenario script
const ScenarioSuite = "ui-grid"

// Scenarios builds the end-to-end test script for docs. Each doc gets a
// describe block that navigates to urlPrefix + section/id before running the
// scenario snippets collected from its examples.
func Scenarios(docs []*Doc, urlPrefix string) string {
	specs := []string{`describe("` + ScenarioSuite + `", function() {`}
	for _, d := range docs {
		specs = append(specs,
			`  describe("`+d.FullID()+`", function() {`,
			`    beforeEach(function() {`,
			`      browser.driver.get("`+urlPrefix+d.FullID()+`");`,
			`    });`,
			`  `,
		)
		for _, s := range d.Scenarios {
			specs = append(specs, indentCode(Trim(s), 4), "")
		}
		specs = append(specs, `});`, "")
	}
	specs = append(specs, `});`)
	return strings.Join(specs, "\n")
}
