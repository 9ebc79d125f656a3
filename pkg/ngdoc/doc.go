// Package ngdoc turns annotated documentation blocks into cross-referenced
// documentation entities and renders them to HTML.
//
// # Pipeline
//
// Each block goes through the same steps:
//
//   - Parse splits the block into @tag sections and fills a Doc, failing on
//     malformed @param, @returns, @property or @eventType tags and on a
//     missing @name.
//   - Finalization derives the short name, the id and the display title, and
//     runs the inline markup transformer over the description, example and
//     this fields.
//
// The whole collection then goes through Merge (children declared with
// @methodOf, @propertyOf or @eventOf move under their parent), rendering
// (Doc.HTML, which also registers the anchors of each page),
// CheckBrokenLinks and Metadata.
//
// # Inline markup
//
// Descriptions are Markdown extended with:
//
//	{@link target text}        cross reference, recorded for validation
//	{@type T [url]}            type hint label
//	{@installModule name}      installation instructions
//	<example module="m">...</example>
//	<doc:example>...</doc:example>
//	<file src="path" tag="t"/> inclusion of a tagged region of a source file
//	//!annotate="re" title|text
//	//!details="re" path
//
// Example blocks, pre blocks and highlighted fences are swapped for
// placeholders before the Markdown pass and restored afterwards, so the
// Markdown engine never rewrites them.
//
// # Usage
//
//	doc := ngdoc.New(text, "src/grid.js", 10, 42, &ngdoc.Options{IsAPI: true})
//	doc.Section = "api"
//	if err := doc.Parse(); err != nil {
//		return err
//	}
//	docs, err := ngdoc.Merge(docs)
//	page, err := doc.HTML()
//	warnings := ngdoc.CheckBrokenLinks(docs, apis, ngdoc.LinkOptions{}, log)
//	pages := ngdoc.Metadata(docs, ngdoc.DefaultIgnoreWords())
package ngdoc
