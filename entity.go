package citetrack

import "strings"

// EntityKind identifies which reference table an entity belongs to.
type EntityKind string

// Reference table kinds tracked by the project.
const (
	KindTopic  EntityKind = "topic"
	KindVessel EntityKind = "vessel"
	KindPlant  EntityKind = "plant"
	KindOwner  EntityKind = "owner"
)

// LinksColumn is the column that accumulates matched report URLs.
const LinksColumn = "Crime Report Links"

// LinkSeparator joins accumulated URLs within the links column.
const LinkSeparator = ", "

// Schema declares where a reference table keeps its entity names and its
// accumulated report links. Tables are validated against their declared
// schema at load time rather than inferred from the data.
type Schema struct {
	Kind        EntityKind
	NameColumn  string
	LinksColumn string
}

// DefaultSchemas returns the schema declarations for the four reference
// tables, keyed by kind.
func DefaultSchemas() map[EntityKind]Schema {
	return map[EntityKind]Schema{
		KindTopic:  {Kind: KindTopic, NameColumn: "Topic", LinksColumn: LinksColumn},
		KindVessel: {Kind: KindVessel, NameColumn: "Vessel name", LinksColumn: LinksColumn},
		KindPlant:  {Kind: KindPlant, NameColumn: "Company name", LinksColumn: LinksColumn},
		KindOwner:  {Kind: KindOwner, NameColumn: "Owner Name", LinksColumn: LinksColumn},
	}
}

// Table is a loaded reference table. Columns other than the name and
// links columns are opaque and round-trip a load/save unchanged.
// Duplicate names are allowed; rows accumulate links independently.
type Table struct {
	Kind    EntityKind
	Columns []string
	Rows    [][]string

	// Index positions of the schema columns within Columns.
	NameIndex  int
	LinksIndex int
}

// Validate returns an error if the table's column indices are out of range.
func (t *Table) Validate() error {
	if t.NameIndex < 0 || t.NameIndex >= len(t.Columns) {
		return Errorf(EINVALID, "table name column index out of range")
	}
	if t.LinksIndex < 0 || t.LinksIndex >= len(t.Columns) {
		return Errorf(EINVALID, "table links column index out of range")
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Name returns the entity name of row i, trimmed.
func (t *Table) Name(i int) string {
	row := t.Rows[i]
	if t.NameIndex >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[t.NameIndex])
}

// Links returns the accumulated URLs of row i as exact tokens.
func (t *Table) Links(i int) []string {
	row := t.Rows[i]
	if t.LinksIndex >= len(row) {
		return nil
	}
	return SplitLinks(row[t.LinksIndex])
}

// SetLinks replaces the accumulated URLs of row i.
func (t *Table) SetLinks(i int, links []string) {
	row := t.Rows[i]
	for len(row) <= t.LinksIndex {
		row = append(row, "")
	}
	row[t.LinksIndex] = JoinLinks(links)
	t.Rows[i] = row
}

// SplitLinks splits a joined link list into exact URL tokens, dropping
// empties. Splitting on the bare comma tolerates lists written without
// the separator's space.
func SplitLinks(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	links := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			links = append(links, p)
		}
	}
	return links
}

// JoinLinks joins URL tokens into the stored column representation.
func JoinLinks(links []string) string {
	return strings.Join(links, LinkSeparator)
}
