// Package cli provides the uidocs command-line interface.
//
// # Commands
//
// generate: Build the documentation site
//
//	uidocs generate --config uidocs.yaml
//	uidocs generate --output ./site --log-level debug
//
// check: Parse, render and validate links without writing anything
//
//	uidocs check
//	uidocs check --strict  # fail on broken links
//
// Without --config, uidocs.yaml (or uidocs.yml, .uidocs.yaml, .uidocs.yml)
// is looked up in the working directory.
package cli
