package ifc

import (
	"fmt"
	"strings"
)

// IfcRoot / IfcProduct attribute positions, shared by IFC2X3 and IFC4.
const (
	attrGlobalID     = 0
	attrOwnerHistory = 1
	attrName         = 2
	attrDescription  = 3
	attrObjectType   = 4
	attrPlacement    = 5
	attrTag          = 7
)

// IfcRelationship attribute positions used here.
const (
	relRelatedObjects  = 4
	relRelatingElement = 5
)

// GlobalID returns the element's GlobalId, or "".
func GlobalID(e *Entity) string {
	s, _ := e.Attr(attrGlobalID).Text()
	return s
}

// Name returns the element's Name, or "" when unset.
func Name(e *Entity) string {
	s, _ := e.Attr(attrName).Text()
	return s
}

// IsProduct reports whether e is a building product that can carry a reuse
// flag: a watched element, or any instance whose ObjectPlacement points at
// a placement. Relationships, property and quantity sets and the project
// are not products.
func (f *File) IsProduct(e *Entity) bool {
	if e == nil {
		return false
	}
	if _, watched := LookupKind(e.Type); watched {
		return true
	}
	id, ok := e.Attr(attrPlacement).RefID()
	if !ok {
		return false
	}
	p := f.Entity(id)
	return p != nil && strings.HasSuffix(p.Type, "PLACEMENT")
}

// DisplayName returns the Name, falling back to "Unnamed <Type>".
func DisplayName(e *Entity, typeName string) string {
	if n := Name(e); n != "" {
		return n
	}
	return fmt.Sprintf("Unnamed %s", typeName)
}

func Description(e *Entity) string {
	s, _ := e.Attr(attrDescription).Text()
	return s
}

func ObjectType(e *Entity) string {
	s, _ := e.Attr(attrObjectType).Text()
	return s
}

func Tag(e *Entity) string {
	s, _ := e.Attr(attrTag).Text()
	return s
}

// relationsOf returns the relationship instances of relType whose
// RelatedObjects list contains e.
func (f *File) relationsOf(e *Entity, relType string) []*Entity {
	var out []*Entity
	for _, rel := range f.ReferencedBy(e.ID) {
		if !rel.Is(relType) {
			continue
		}
		for _, obj := range rel.Attr(relRelatedObjects).Items {
			if id, ok := obj.RefID(); ok && id == e.ID {
				out = append(out, rel)
				break
			}
		}
	}
	return out
}

// related follows attribute idx of rel to the referenced instance.
func (f *File) related(rel *Entity, idx int) *Entity {
	id, ok := rel.Attr(idx).RefID()
	if !ok {
		return nil
	}
	return f.Entity(id)
}

// propertyDefinitions returns the property sets and quantity sets attached
// to e through IfcRelDefinesByProperties.
func (f *File) propertyDefinitions(e *Entity) []*Entity {
	var out []*Entity
	for _, rel := range f.relationsOf(e, "IfcRelDefinesByProperties") {
		if def := f.related(rel, relRelatingElement); def != nil {
			out = append(out, def)
		}
	}
	return out
}

// Quantities collects the values of every IfcElementQuantity attached to e,
// keyed by quantity name (Length, NetSideArea, NetVolume, ...).
func (f *File) Quantities(e *Entity) map[string]float64 {
	out := make(map[string]float64)
	for _, def := range f.propertyDefinitions(e) {
		if !def.Is("IfcElementQuantity") {
			continue
		}
		// IfcElementQuantity.Quantities
		for _, ref := range def.Attr(5).Items {
			id, ok := ref.RefID()
			if !ok {
				continue
			}
			q := f.Entity(id)
			if q == nil {
				continue
			}
			name, ok := q.Attr(0).Text()
			if !ok || name == "" {
				continue
			}
			// Length/Area/Volume/Count/Weight/TimeValue all sit at position 3.
			if v, ok := q.Attr(3).Float(); ok {
				out[name] = v
			}
		}
	}
	return out
}

// PropertySet returns the IfcPropertySet named name attached to e, or nil.
func (f *File) PropertySet(e *Entity, name string) *Entity {
	_, pset := f.propertySetRel(e, name)
	return pset
}

func (f *File) propertySetRel(e *Entity, name string) (*Entity, *Entity) {
	for _, rel := range f.relationsOf(e, "IfcRelDefinesByProperties") {
		def := f.related(rel, relRelatingElement)
		if def == nil || !def.Is("IfcPropertySet") {
			continue
		}
		if n, _ := def.Attr(attrName).Text(); n == name {
			return rel, def
		}
	}
	return nil, nil
}

// Properties returns the nominal values of the single-value properties in
// the named property set.
func (f *File) Properties(e *Entity, psetName string) map[string]Value {
	pset := f.PropertySet(e, psetName)
	if pset == nil {
		return nil
	}
	out := make(map[string]Value)
	for _, ref := range pset.Attr(4).Items {
		id, ok := ref.RefID()
		if !ok {
			continue
		}
		prop := f.Entity(id)
		if prop == nil || !prop.Is("IfcPropertySingleValue") {
			continue
		}
		if n, ok := prop.Attr(0).Text(); ok {
			out[n] = prop.Attr(2)
		}
	}
	return out
}
