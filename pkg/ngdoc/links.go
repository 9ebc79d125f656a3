package ngdoc

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// defaultAPIAnchors are registered on every page of an API section
var defaultAPIAnchors = []string{"directive", "service", "filter", "function"}

// LinkOptions controls link normalization in CheckBrokenLinks
type LinkOptions struct {
	HTML5Mode  bool
	LinkPrefix string
}

// LinkWarning reports a link that points to a missing page or anchor
type LinkWarning struct {
	Doc    string
	File   string
	Link   string
	Reason string
}

const (
	ReasonMissingPage   = "points to a non existing page"
	ReasonMissingAnchor = "points to a non existing anchor"
)

// CheckBrokenLinks validates the links collected while rendering markup
// against the pages and anchors of docs. apis names the API sections, whose
// pages also expose the default API anchors. Every problem is logged at warn
// level and returned; none of them is fatal.
//
// Docs must have gone through Parse and HTML first so that Links and Anchors
// are complete.
func CheckBrokenLinks(docs []*Doc, apis map[string]bool, opts LinkOptions, log logrus.FieldLogger) []LinkWarning {
	if log == nil {
		log = logrus.StandardLogger()
	}
	prefix := opts.LinkPrefix
	if prefix == "" {
		prefix = DefaultLinkPrefix
	}

	byFullID := make(map[string]*Doc, len(docs))
	for _, d := range docs {
		byFullID[d.FullID()] = d
		if apis[d.Section] {
			for _, a := range defaultAPIAnchors {
				if !containsFold(d.Anchors, a) {
					d.Anchors = append(d.Anchors, a)
				}
			}
		}
	}

	var warnings []LinkWarning
	for _, d := range docs {
		for _, link := range d.Links {
			target := normalizeLink(d, link, opts.HTML5Mode, prefix)

			page, anchor, _ := strings.Cut(target, "#")
			linked := byFullID[page]

			var reason string
			switch {
			case linked == nil:
				reason = ReasonMissingPage
			case anchor != "" && !containsFold(linked.Anchors, anchor):
				reason = ReasonMissingAnchor
			default:
				continue
			}

			w := LinkWarning{Doc: d.FullID(), File: d.File, Link: target, Reason: reason}
			warnings = append(warnings, w)
			log.WithFields(logrus.Fields{
				"doc":    w.Doc,
				"file":   w.File,
				"link":   w.Link,
				"reason": w.Reason,
			}).Warn("broken documentation link")
		}
	}
	return warnings
}

// normalizeLink strips the routing prefix and expands a bare #anchor to the
// page of the owning doc
func normalizeLink(d *Doc, link string, html5Mode bool, prefix string) string {
	if !html5Mode {
		link = strings.TrimPrefix(link, prefix)
	}
	link = strings.TrimPrefix(link, "/")
	if strings.HasPrefix(link, "#") {
		id, _, _ := strings.Cut(d.ID, "#")
		link = d.Section + "/" + id + link
	}
	return link
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
