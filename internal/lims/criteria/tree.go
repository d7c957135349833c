package criteria

// Tree is an arena of criterion nodes addressed by id, with parent and
// children index lists per section. A cell edit touches exactly one arena
// entry; nothing is rebuilt along the path from the root. Expand state is a
// presentation-only set of ids and never affects evaluation.
type Tree struct {
	sections  []*RequirementSection
	nodes     map[string]*Criterion
	children  map[string][]string
	parent    map[string]string
	sectionOf map[string]string
	roots     map[string][]string
	expanded  map[string]bool
}

// NewTree indexes requirement sections and their nested criteria into an
// arena. The nested Children slices remain the authoritative serialized
// shape; the arena mirrors them for O(1) addressing.
func NewTree(sections []*RequirementSection) *Tree {
	t := &Tree{
		sections:  sections,
		nodes:     map[string]*Criterion{},
		children:  map[string][]string{},
		parent:    map[string]string{},
		sectionOf: map[string]string{},
		roots:     map[string][]string{},
		expanded:  map[string]bool{},
	}
	for _, sec := range sections {
		for _, c := range sec.Criteria {
			t.roots[sec.ID] = append(t.roots[sec.ID], c.ID)
			t.index(sec.ID, "", c)
		}
	}
	return t
}

func (t *Tree) index(sectionID, parentID string, c *Criterion) {
	t.nodes[c.ID] = c
	t.sectionOf[c.ID] = sectionID
	if parentID != "" {
		t.parent[c.ID] = parentID
		t.children[parentID] = append(t.children[parentID], c.ID)
	}
	for _, child := range c.Children {
		t.index(sectionID, c.ID, child)
	}
}

// Sections returns the underlying requirement sections.
func (t *Tree) Sections() []*RequirementSection {
	return t.sections
}

// Criterion returns the node for an id, or nil.
func (t *Tree) Criterion(id string) *Criterion {
	return t.nodes[id]
}

// SetCell writes one cell addressed by the stable four-part coordinate
// (section, criterion, row, column), independent of tree depth. Unknown
// coordinates are a no-op and report false.
func (t *Tree) SetCell(sectionID, criterionID, rowID, columnID, value string) bool {
	c, ok := t.nodes[criterionID]
	if !ok || t.sectionOf[criterionID] != sectionID || c.Data == nil {
		return false
	}
	c.Data.Set(c.Structure, rowID, columnID, value)
	return true
}

// Expand marks a node open for display.
func (t *Tree) Expand(id string) { t.expanded[id] = true }

// Collapse removes a node from the expanded set.
func (t *Tree) Collapse(id string) { delete(t.expanded, id) }

// IsExpanded reports display state for a node.
func (t *Tree) IsExpanded(id string) bool { return t.expanded[id] }

// VisitAll walks every criterion pre-order, parents strictly before their
// children, sections in declared order. Headers therefore render above the
// tables they contain.
func (t *Tree) VisitAll(fn func(sectionID string, c *Criterion)) {
	for _, sec := range t.sections {
		for _, id := range t.roots[sec.ID] {
			t.visit(sec.ID, id, fn)
		}
	}
}

func (t *Tree) visit(sectionID, id string, fn func(string, *Criterion)) {
	c, ok := t.nodes[id]
	if !ok {
		return
	}
	fn(sectionID, c)
	for _, childID := range t.children[id] {
		t.visit(sectionID, childID, fn)
	}
}
