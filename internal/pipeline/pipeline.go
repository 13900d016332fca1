// Package pipeline extracts the watched building elements of an IFC model
// and converts each of them to a mesh, one element at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/logger"
)

// Supported mesh formats.
const (
	FormatGLB = "glb"
	FormatOBJ = "obj"
)

// ErrNoOutput is reported when the converter exited cleanly without
// producing the mesh file.
var ErrNoOutput = errors.New("converter produced no output")

// Converter turns a single-element IFC file into a mesh file.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// Element is one watched building element with its catalogue metadata.
type Element struct {
	GUID        string
	IfcType     string // watched type, e.g. IfcWall
	SourceType  string // exact type in the file, e.g. IfcWallStandardCase
	Name        string
	Material    string
	Category    string
	Subcategory string
	SummaryKey  string
	Dimensions  map[string]float64
	Metadata    map[string]string

	entity *ifc.Entity
}

// Result is handed to the sink for every converted element.
type Result struct {
	Element  Element
	MeshPath string
	MeshName string
}

// Sink consumes a converted element. An error marks the element failed.
type Sink func(ctx context.Context, res Result) error

// Summary reports one run.
type Summary struct {
	Counts    map[string]int
	Converted int
	Failed    []string
}

// Pipeline runs extraction and conversion for one model at a time.
type Pipeline struct {
	converter Converter
	workDir   string
	format    string
	materials *ifc.MaterialResolvers
}

// New creates a pipeline writing temporary single-element files under
// workDir and meshes in the given format.
func New(converter Converter, workDir, format string) *Pipeline {
	if format == "" {
		format = FormatGLB
	}
	return &Pipeline{
		converter: converter,
		workDir:   workDir,
		format:    format,
		materials: ifc.DefaultMaterialResolvers(),
	}
}

// Format returns the mesh file extension produced by the pipeline.
func (p *Pipeline) Format() string { return p.format }

// MeshFileName is the mesh file name for an element: <guid>_<IfcType>.<format>.
func MeshFileName(guid, ifcType, format string) string {
	return fmt.Sprintf("%s_%s.%s", guid, ifcType, format)
}

// Extract enumerates the watched elements in kind-table order and counts
// them per summary key. Every key is present in the counts, zero or not.
func (p *Pipeline) Extract(f *ifc.File) ([]Element, map[string]int) {
	counts := make(map[string]int)
	var out []Element
	for _, kind := range ifc.WatchedKinds() {
		entities := f.ByType(kind.Type)
		counts[kind.SummaryKey] = len(entities)
		for _, e := range entities {
			out = append(out, p.describe(f, e, kind))
		}
	}
	return out, counts
}

// Describe builds the catalogue metadata for a single entity, watched or not.
func (p *Pipeline) Describe(f *ifc.File, e *ifc.Entity) Element {
	kind, _ := ifc.LookupKind(e.Type)
	return p.describe(f, e, kind)
}

func (p *Pipeline) describe(f *ifc.File, e *ifc.Entity, kind ifc.ElementKind) Element {
	sourceType := ifc.DisplayType(e.Type)
	ifcType := kind.Type
	if ifcType == "" {
		ifcType = sourceType
	}

	meta := map[string]string{"source_type": sourceType}
	if schema := f.Schema(); schema != "" {
		meta["schema"] = schema
	}
	if tag := ifc.Tag(e); tag != "" {
		meta["tag"] = tag
	}
	if ot := ifc.ObjectType(e); ot != "" {
		meta["object_type"] = ot
	}
	if d := ifc.Description(e); d != "" {
		meta["description"] = d
	}

	return Element{
		GUID:        ifc.GlobalID(e),
		IfcType:     ifcType,
		SourceType:  sourceType,
		Name:        ifc.DisplayName(e, ifcType),
		Material:    p.materials.Resolve(f, e),
		Category:    kind.Category,
		Subcategory: kind.Subcategory,
		SummaryKey:  kind.SummaryKey,
		Dimensions:  f.Quantities(e),
		Metadata:    meta,
		entity:      e,
	}
}

// Run converts every watched element of f into outDir and passes each
// success to sink. Failures are collected per GUID and never stop the
// run; only cancellation of ctx does.
func (p *Pipeline) Run(ctx context.Context, f *ifc.File, outDir string, sink Sink) (*Summary, error) {
	log := logger.WithContext(ctx)

	elements, counts := p.Extract(f)
	summary := &Summary{Counts: counts, Failed: []string{}}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.MkdirAll(p.workDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create work directory: %w", err)
	}
	tmpDir, err := os.MkdirTemp(p.workDir, "ifc-*")
	if err != nil {
		return summary, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.WithError(err).Warn("failed to remove temp directory")
		}
	}()

	for _, el := range elements {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		elog := log.WithFields(map[string]interface{}{"guid": el.GUID, "ifc_type": el.IfcType})

		res, err := p.convert(ctx, f, el, tmpDir, outDir)
		if err == nil && sink != nil {
			err = sink(ctx, res)
		}
		if err != nil {
			elog.WithError(err).Warn("component conversion failed")
			summary.Failed = append(summary.Failed, el.GUID)
			continue
		}
		summary.Converted++
		elog.Debug("component converted")
	}
	return summary, nil
}

func (p *Pipeline) convert(ctx context.Context, f *ifc.File, el Element, tmpDir, outDir string) (Result, error) {
	tmp := filepath.Join(tmpDir, el.GUID+".ifc")
	defer func() {
		if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
			logger.WithContext(ctx).WithField("path", tmp).WithError(err).Warn("failed to remove temp file")
		}
	}()

	if err := f.Subset(el.entity).WriteFile(tmp); err != nil {
		return Result{}, fmt.Errorf("failed to export element: %w", err)
	}

	name := MeshFileName(el.GUID, el.IfcType, p.format)
	out := filepath.Join(outDir, name)
	if err := p.converter.Convert(ctx, tmp, out); err != nil {
		return Result{}, err
	}
	if _, err := os.Stat(out); err != nil {
		return Result{}, ErrNoOutput
	}
	return Result{Element: el, MeshPath: out, MeshName: name}, nil
}
