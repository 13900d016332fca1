package ifc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is a header entry such as FILE_SCHEMA(('IFC4')).
type Record struct {
	Name   string
	Params []Value
}

// Entity is one instance of the DATA section. Type is upper case
// (IFCWALL). Complex instances carry their partial records in Parts and
// have an empty Type.
type Entity struct {
	ID    int
	Type  string
	Attrs []Value
	Parts []Value

	file *File
}

// Attr returns attribute i, or a null value when the record is shorter.
func (e *Entity) Attr(i int) Value {
	if i < 0 || i >= len(e.Attrs) {
		return Null()
	}
	return e.Attrs[i]
}

// SetAttr replaces attribute i, padding the record with nulls if needed.
func (e *Entity) SetAttr(i int, v Value) {
	for len(e.Attrs) <= i {
		e.Attrs = append(e.Attrs, Null())
	}
	e.Attrs[i] = v
	if e.file != nil {
		e.file.invalidate()
	}
}

// Is reports whether the entity is exactly of the given type (case-insensitive).
func (e *Entity) Is(typeName string) bool {
	return e.Type == strings.ToUpper(typeName)
}

func (e *Entity) refs() []int {
	var out []int
	for _, v := range e.Attrs {
		out = v.Refs(out)
	}
	for _, v := range e.Parts {
		out = v.Refs(out)
	}
	return out
}

func (e *Entity) encode(b *strings.Builder) {
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(e.ID))
	b.WriteByte('=')
	if e.Type == "" {
		b.WriteByte('(')
		for _, part := range e.Parts {
			part.format(b)
		}
		b.WriteByte(')')
	} else {
		b.WriteString(e.Type)
		b.WriteByte('(')
		formatValues(b, e.Attrs)
		b.WriteByte(')')
	}
	b.WriteString(";\n")
}

// File is a parsed exchange structure.
type File struct {
	Header []Record

	entities map[int]*Entity
	order    []int
	byType   map[string][]int
	maxID    int

	inverse map[int][]int
	guids   map[string]int
}

func newFile() *File {
	return &File{
		entities: make(map[int]*Entity),
		byType:   make(map[string][]int),
	}
}

// New returns an empty file with a minimal header for the given schema.
func New(schema string) *File {
	f := newFile()
	f.Header = defaultHeader(schema)
	return f
}

func defaultHeader(schema string) []Record {
	return []Record{
		{Name: "FILE_DESCRIPTION", Params: []Value{List(String("ViewDefinition [CoordinationView]")), String("2;1")}},
		{Name: "FILE_NAME", Params: []Value{
			String(""),
			String(time.Now().UTC().Format("2006-01-02T15:04:05")),
			List(String("")),
			List(String("")),
			String("ifc-reuse-backend"),
			String("ifc-reuse-backend"),
			String(""),
		}},
		{Name: "FILE_SCHEMA", Params: []Value{List(String(schema))}},
	}
}

func (f *File) insert(e *Entity) error {
	if _, dup := f.entities[e.ID]; dup {
		return fmt.Errorf("duplicate instance #%d", e.ID)
	}
	e.file = f
	f.entities[e.ID] = e
	f.order = append(f.order, e.ID)
	if e.Type != "" {
		f.byType[e.Type] = append(f.byType[e.Type], e.ID)
	}
	if e.ID > f.maxID {
		f.maxID = e.ID
	}
	f.invalidate()
	return nil
}

func (f *File) invalidate() {
	f.inverse = nil
	f.guids = nil
}

// Schema returns the first FILE_SCHEMA identifier, e.g. IFC4 or IFC2X3.
func (f *File) Schema() string {
	for _, rec := range f.Header {
		if rec.Name != "FILE_SCHEMA" || len(rec.Params) == 0 {
			continue
		}
		if items := rec.Params[0].Items; len(items) > 0 {
			if s, ok := items[0].Text(); ok {
				return strings.ToUpper(s)
			}
		}
	}
	return ""
}

// Len returns the number of instances.
func (f *File) Len() int { return len(f.order) }

// Entity returns instance #id, or nil.
func (f *File) Entity(id int) *Entity { return f.entities[id] }

// Entities returns all instances in file order.
func (f *File) Entities() []*Entity {
	out := make([]*Entity, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.entities[id])
	}
	return out
}

// ByType returns the instances of typeName and of its known subtypes
// (IfcWall includes IfcWallStandardCase), ordered by instance id.
func (f *File) ByType(typeName string) []*Entity {
	names := []string{strings.ToUpper(typeName)}
	if kind, ok := LookupKind(typeName); ok && strings.EqualFold(kind.Type, typeName) {
		for _, sub := range kind.Subtypes {
			names = append(names, strings.ToUpper(sub))
		}
	}
	var ids []int
	for _, name := range names {
		ids = append(ids, f.byType[name]...)
	}
	sort.Ints(ids)
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.entities[id])
	}
	return out
}

// ByGUID returns the rooted instance with the given GlobalId, or nil.
func (f *File) ByGUID(guid string) *Entity {
	if f.guids == nil {
		f.guids = make(map[string]int)
		for _, id := range f.order {
			e := f.entities[id]
			if e.Type == "" {
				continue
			}
			if g, ok := e.Attr(attrGlobalID).Text(); ok && len(g) == guidLength {
				if _, seen := f.guids[g]; !seen {
					f.guids[g] = id
				}
			}
		}
	}
	id, ok := f.guids[guid]
	if !ok {
		return nil
	}
	return f.entities[id]
}

// ReferencedBy returns the instances that reference #id, ordered by id.
func (f *File) ReferencedBy(id int) []*Entity {
	if f.inverse == nil {
		f.inverse = make(map[int][]int)
		for _, src := range f.order {
			seen := make(map[int]bool)
			for _, dst := range f.entities[src].refs() {
				if seen[dst] {
					continue
				}
				seen[dst] = true
				f.inverse[dst] = append(f.inverse[dst], src)
			}
		}
	}
	ids := f.inverse[id]
	out := make([]*Entity, 0, len(ids))
	for _, src := range ids {
		out = append(out, f.entities[src])
	}
	return out
}

// Add appends a new instance with the next free id.
func (f *File) Add(typeName string, attrs ...Value) *Entity {
	e := &Entity{ID: f.maxID + 1, Type: strings.ToUpper(typeName), Attrs: attrs}
	_ = f.insert(e)
	return e
}

// Subset returns a standalone file holding the roots, everything they
// reference transitively, and the IfcProject with its units and contexts.
// Instance ids are preserved.
func (f *File) Subset(roots ...*Entity) *File {
	keep := make(map[int]bool)
	var queue []int
	push := func(id int) {
		if keep[id] {
			return
		}
		if _, ok := f.entities[id]; !ok {
			return
		}
		keep[id] = true
		queue = append(queue, id)
	}
	for _, r := range roots {
		push(r.ID)
	}
	for _, p := range f.byType["IFCPROJECT"] {
		push(p)
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, ref := range f.entities[id].refs() {
			push(ref)
		}
	}

	out := newFile()
	out.Header = append([]Record(nil), f.Header...)
	for _, id := range f.order {
		if !keep[id] {
			continue
		}
		src := f.entities[id]
		_ = out.insert(&Entity{
			ID:    src.ID,
			Type:  src.Type,
			Attrs: append([]Value(nil), src.Attrs...),
			Parts: append([]Value(nil), src.Parts...),
		})
	}
	return out
}

// WriteTo writes the exchange structure to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	header := f.Header
	if len(header) == 0 {
		header = defaultHeader("IFC4")
	}
	var b strings.Builder
	b.WriteString("ISO-10303-21;\nHEADER;\n")
	for _, rec := range header {
		b.WriteString(rec.Name)
		b.WriteByte('(')
		formatValues(&b, rec.Params)
		b.WriteString(");\n")
	}
	b.WriteString("ENDSEC;\nDATA;\n")
	if _, err := io.WriteString(cw, b.String()); err != nil {
		return cw.n, err
	}
	for _, id := range f.order {
		b.Reset()
		f.entities[id].encode(&b)
		if _, err := io.WriteString(cw, b.String()); err != nil {
			return cw.n, err
		}
	}
	if _, err := io.WriteString(cw, "ENDSEC;\nEND-ISO-10303-21;\n"); err != nil {
		return cw.n, err
	}
	return cw.n, cw.w.Flush()
}

// WriteFile writes the file to path through a temporary sibling and a rename.
func (f *File) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ifc-*")
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

type countingWriter struct {
	w *bufio.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
