// Package storage writes generated documentation sites.
//
// # Overview
//
// A generator run produces a handful of file kinds, all addressed by
// slash separated names relative to the output root:
//
//   - partials/<section>/<id>.html: one rendered page per document
//   - js/docs-setup.json: navigation and search data for the site shell
//   - ptore2e/scenarios.spec.js: end-to-end scenarios collected from examples
//   - index.html: a static index of every page
//
// # Backends
//
// Writer is implemented by three backends:
//
//   - FileSystemStorage writes below a local directory
//   - S3Storage uploads each file as an object under an optional key prefix
//   - MemoryStorage keeps files in memory for dry runs and tests
//
// New picks a backend from Config.Type:
//
//	w, err := storage.New(ctx, storage.Config{
//		Type:           storage.TypeFilesystem,
//		FilesystemRoot: "docs",
//	})
//	if err != nil {
//		return err
//	}
//	if err := storage.WritePage(ctx, w, "api", "ui.grid.class:Grid", html); err != nil {
//		return err
//	}
//
// Names that are absolute or climb out of the root with ".." are rejected
// with ErrInvalidPath.
package storage
