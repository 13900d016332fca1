package ifc

const (
	ReusePsetName        = "Pset_Reuse"
	ReusablePropertyName = "Reusable"
)

// MarkReusable sets Pset_Reuse.Reusable on e. An existing property is
// updated in place; otherwise the property, the set and its
// IfcRelDefinesByProperties are created with the element's owner history.
// A set shared with other elements is left to them and e gets its own.
func (f *File) MarkReusable(e *Entity, reusable bool) {
	value := Typed("IfcBoolean", Bool(reusable))

	rel, pset := f.propertySetRel(e, ReusePsetName)
	if rel != nil && len(rel.Attr(relRelatedObjects).Items) > 1 {
		detach(rel, e.ID)
		rel, pset = nil, nil
	}

	if pset != nil {
		for _, ref := range pset.Attr(4).Items {
			id, ok := ref.RefID()
			if !ok {
				continue
			}
			prop := f.Entity(id)
			if prop == nil || !prop.Is("IfcPropertySingleValue") {
				continue
			}
			if n, _ := prop.Attr(0).Text(); n == ReusablePropertyName {
				prop.SetAttr(2, value)
				return
			}
		}
		prop := f.Add("IfcPropertySingleValue", String(ReusablePropertyName), Null(), value, Null())
		items := append(append([]Value(nil), pset.Attr(4).Items...), RefTo(prop.ID))
		pset.SetAttr(4, List(items...))
		return
	}

	owner := e.Attr(attrOwnerHistory)
	prop := f.Add("IfcPropertySingleValue", String(ReusablePropertyName), Null(), value, Null())
	pset = f.Add("IfcPropertySet", String(NewGUID()), owner, String(ReusePsetName), Null(), List(RefTo(prop.ID)))
	f.Add("IfcRelDefinesByProperties", String(NewGUID()), owner, Null(), Null(), List(RefTo(e.ID)), RefTo(pset.ID))
}

// Reusable reports the Pset_Reuse.Reusable flag of e, if present.
func (f *File) Reusable(e *Entity) (bool, bool) {
	props := f.Properties(e, ReusePsetName)
	v, ok := props[ReusablePropertyName]
	if !ok {
		return false, false
	}
	return v.Bool()
}

func detach(rel *Entity, id int) {
	var keep []Value
	for _, obj := range rel.Attr(relRelatedObjects).Items {
		if ref, ok := obj.RefID(); ok && ref == id {
			continue
		}
		keep = append(keep, obj)
	}
	rel.SetAttr(relRelatedObjects, List(keep...))
}
