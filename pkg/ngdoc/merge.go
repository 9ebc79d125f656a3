package ngdoc

import "sort"

// relation is one of the "X of Y" declarations a child can carry
type relation struct {
	name   string
	parent func(d *Doc) string
	list   func(parent *Doc) *[]*Doc
}

// relations are checked in order; the first one a doc declares is used
var relations = []relation{
	{
		name:   "method",
		parent: func(d *Doc) string { return d.MethodOf },
		list:   func(p *Doc) *[]*Doc { return &p.Methods },
	},
	{
		name:   "property",
		parent: func(d *Doc) string { return d.PropertyOf },
		list:   func(p *Doc) *[]*Doc { return &p.Properties },
	},
	{
		name:   "event",
		parent: func(d *Doc) string { return d.EventOf },
		list:   func(p *Doc) *[]*Doc { return &p.Events },
	},
}

// Merge moves every doc declaring @methodOf, @propertyOf or @eventOf into
// the matching collection of its parent, looked up by section and id. The
// returned slice holds the remaining top-level docs in their original order.
// Child collections stay sorted by name. Merging an already merged
// collection changes nothing.
func Merge(docs []*Doc) ([]*Doc, error) {
	byFullID := make(map[string]*Doc, len(docs))
	for _, d := range docs {
		byFullID[d.FullID()] = d
	}

	parents := make(map[*Doc]*Doc)
	top := make([]*Doc, 0, len(docs))

	for _, d := range docs {
		rel, parentName, ok := declaredRelation(d)
		if !ok {
			top = append(top, d)
			continue
		}

		parent := byFullID[d.Section+"/"+parentName]
		if parent == nil {
			return nil, &MergeError{Err: ErrMissingParent, Parent: parentName, Child: d.Name, Relation: rel.name}
		}
		for p := parent; p != nil; p = parents[p] {
			if p == d {
				return nil, &MergeError{Err: ErrParentCycle, Parent: parentName, Child: d.Name, Relation: rel.name}
			}
		}
		parents[d] = parent

		list := rel.list(parent)
		if !containsDoc(*list, d) {
			*list = append(*list, d)
			sort.SliceStable(*list, func(i, j int) bool {
				return (*list)[i].Name < (*list)[j].Name
			})
		}
	}

	return top, nil
}

func declaredRelation(d *Doc) (relation, string, bool) {
	for _, rel := range relations {
		if name := rel.parent(d); name != "" {
			return rel, name, true
		}
	}
	return relation{}, "", false
}

func containsDoc(list []*Doc, d *Doc) bool {
	for _, c := range list {
		if c == d {
			return true
		}
	}
	return false
}
