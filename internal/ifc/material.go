package ifc

import "strings"

// UnknownMaterial is reported when no material can be resolved.
const UnknownMaterial = "Unknown"

const maxMaterialDepth = 8

// MaterialResolver turns one kind of material definition into a name. It
// may delegate to the resolvers of the definitions it references.
type MaterialResolver func(r *MaterialResolvers, f *File, def *Entity, depth int) (string, bool)

// MaterialResolvers dispatches on the type of the associated material
// definition.
type MaterialResolvers struct {
	byType map[string]MaterialResolver
}

// DefaultMaterialResolvers handles plain materials, layer sets, lists,
// constituent sets and profile sets, taking the first entry of each set.
func DefaultMaterialResolvers() *MaterialResolvers {
	r := &MaterialResolvers{byType: make(map[string]MaterialResolver)}
	r.Register("IfcMaterial", func(_ *MaterialResolvers, _ *File, def *Entity, _ int) (string, bool) {
		name, ok := def.Attr(0).Text()
		return name, ok && name != ""
	})
	r.Register("IfcMaterialLayerSetUsage", follow(0))
	r.Register("IfcMaterialLayerSet", first(0))
	r.Register("IfcMaterialLayer", follow(0))
	r.Register("IfcMaterialList", first(0))
	r.Register("IfcMaterialConstituentSet", first(2))
	r.Register("IfcMaterialConstituent", follow(2))
	r.Register("IfcMaterialProfileSetUsage", follow(0))
	r.Register("IfcMaterialProfileSet", first(2))
	r.Register("IfcMaterialProfile", follow(2))
	return r
}

// Register installs fn for material definitions of typeName.
func (r *MaterialResolvers) Register(typeName string, fn MaterialResolver) {
	r.byType[strings.ToUpper(typeName)] = fn
}

func (r *MaterialResolvers) resolve(f *File, def *Entity, depth int) (string, bool) {
	if def == nil || depth > maxMaterialDepth {
		return "", false
	}
	fn, ok := r.byType[def.Type]
	if !ok {
		return "", false
	}
	return fn(r, f, def, depth+1)
}

// Resolve returns the material name of e, looking first at materials
// associated with the element and then at those of its type object.
func (r *MaterialResolvers) Resolve(f *File, e *Entity) string {
	if name, ok := r.associated(f, e); ok {
		return name
	}
	for _, rel := range f.relationsOf(e, "IfcRelDefinesByType") {
		if typ := f.related(rel, relRelatingElement); typ != nil {
			if name, ok := r.associated(f, typ); ok {
				return name
			}
		}
	}
	return UnknownMaterial
}

func (r *MaterialResolvers) associated(f *File, e *Entity) (string, bool) {
	for _, rel := range f.relationsOf(e, "IfcRelAssociatesMaterial") {
		if name, ok := r.resolve(f, f.related(rel, relRelatingElement), 0); ok {
			return name, true
		}
	}
	return "", false
}

// follow resolves the definition referenced by attribute idx.
func follow(idx int) MaterialResolver {
	return func(r *MaterialResolvers, f *File, def *Entity, depth int) (string, bool) {
		return r.resolve(f, f.related(def, idx), depth)
	}
}

// first resolves the first referenced entry of the list at attribute idx.
func first(idx int) MaterialResolver {
	return func(r *MaterialResolvers, f *File, def *Entity, depth int) (string, bool) {
		for _, item := range def.Attr(idx).Items {
			if id, ok := item.RefID(); ok {
				return r.resolve(f, f.Entity(id), depth)
			}
		}
		return "", false
	}
}
