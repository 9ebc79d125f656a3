// Package docs runs the documentation pipeline and exports the site index.
//
// # Overview
//
// A Generator turns the sections of a configuration into a site:
//
//  1. read: every file matching a section's patterns is split into blocks
//  2. parse: each block becomes an ngdoc.Doc tagged with its section
//  3. merge: members move into their parent's methods, properties and events
//  4. render: every top-level doc is rendered to HTML
//  5. validate: links collected while rendering are checked; problems are
//     logged as warnings and never fail the run
//  6. write: pages, js/docs-setup.json, the scenario script and index.html
//     go to a storage.Writer
//
// The first parse, merge or render error aborts the run before anything is
// written.
//
// # Usage Example
//
//	cfg, err := config.LoadConfig("uidocs.yaml")
//	if err != nil {
//		return err
//	}
//	out, err := storage.New(ctx, cfg.StorageConfig())
//	if err != nil {
//		return err
//	}
//	res, err := docs.NewGenerator(cfg, logger, nil).Run(ctx, out)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d pages, %d broken links\n", len(res.Pages), len(res.Warnings))
//
// # Index Page
//
// IndexExporter renders a standalone index.html listing every page by
// section, with links to the rendered partials and a client-side filter over
// the page keywords.
package docs
