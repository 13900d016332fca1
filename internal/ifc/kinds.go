package ifc

import "strings"

// ElementKind describes a watched building element type and how it is
// catalogued.
type ElementKind struct {
	Type        string
	Category    string
	Subcategory string
	SummaryKey  string
	Subtypes    []string
}

var watchedKinds = []ElementKind{
	{Type: "IfcWall", Category: "Architectural", Subcategory: "Wall", SummaryKey: "walls",
		Subtypes: []string{"IfcWallStandardCase", "IfcWallElementedCase"}},
	{Type: "IfcWindow", Category: "Architectural", Subcategory: "Window", SummaryKey: "windows",
		Subtypes: []string{"IfcWindowStandardCase"}},
	{Type: "IfcSlab", Category: "Structural", Subcategory: "Slab", SummaryKey: "slabs",
		Subtypes: []string{"IfcSlabStandardCase", "IfcSlabElementedCase"}},
	{Type: "IfcBeam", Category: "Structural", Subcategory: "Beam", SummaryKey: "beams",
		Subtypes: []string{"IfcBeamStandardCase"}},
	{Type: "IfcColumn", Category: "Structural", Subcategory: "Column", SummaryKey: "columns",
		Subtypes: []string{"IfcColumnStandardCase"}},
	{Type: "IfcDoor", Category: "Architectural", Subcategory: "Door", SummaryKey: "doors",
		Subtypes: []string{"IfcDoorStandardCase"}},
	{Type: "IfcSpace", Category: "MEP", Subcategory: "Space", SummaryKey: "spaces"},
}

// UnknownKind is used for elements outside the watched table.
var UnknownKind = ElementKind{Category: "Unknown", Subcategory: "Unknown"}

// WatchedKinds returns the catalogued element kinds in extraction order.
func WatchedKinds() []ElementKind {
	return append([]ElementKind(nil), watchedKinds...)
}

// LookupKind finds the watched kind for a type name or one of its
// subtypes, ignoring case.
func LookupKind(typeName string) (ElementKind, bool) {
	for _, k := range watchedKinds {
		if strings.EqualFold(k.Type, typeName) {
			return k, true
		}
		for _, sub := range k.Subtypes {
			if strings.EqualFold(sub, typeName) {
				return k, true
			}
		}
	}
	return UnknownKind, false
}

// schemaSpellings covers the product types most often found next to the
// watched ones.
var schemaSpellings = []string{
	"IfcBuildingElementProxy", "IfcCovering", "IfcCurtainWall", "IfcFooting",
	"IfcFurnishingElement", "IfcFurniture", "IfcMember", "IfcPile", "IfcPlate",
	"IfcRailing", "IfcRamp", "IfcRampFlight", "IfcRoof", "IfcStair", "IfcStairFlight",
	"IfcChimney", "IfcShadingDevice", "IfcOpeningElement", "IfcSite", "IfcBuilding",
	"IfcBuildingStorey", "IfcDistributionElement", "IfcFlowTerminal", "IfcFlowSegment",
	"IfcFlowFitting", "IfcFlowController", "IfcEnergyConversionDevice", "IfcSanitaryTerminal",
	"IfcLightFixture", "IfcElementAssembly", "IfcTransportElement", "IfcDiscreteAccessory",
	"IfcMechanicalFastener", "IfcReinforcingBar", "IfcPipeSegment", "IfcPipeFitting",
	"IfcDuctSegment", "IfcDuctFitting", "IfcWallType", "IfcDoorType", "IfcWindowType",
}

// DisplayType maps an upper-case STEP type name (IFCWALLSTANDARDCASE) back
// to its schema spelling. Types outside the known tables keep the Ifc
// prefix and are capitalised after it (IFCFOO becomes IfcFoo).
func DisplayType(stepType string) string {
	for _, k := range watchedKinds {
		if strings.EqualFold(k.Type, stepType) {
			return k.Type
		}
		for _, sub := range k.Subtypes {
			if strings.EqualFold(sub, stepType) {
				return sub
			}
		}
	}
	for _, name := range schemaSpellings {
		if strings.EqualFold(name, stepType) {
			return name
		}
	}
	if len(stepType) > 3 && strings.EqualFold(stepType[:3], "ifc") {
		rest := strings.ToLower(stepType[3:])
		return "Ifc" + strings.ToUpper(rest[:1]) + rest[1:]
	}
	return stepType
}
