package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ifc-reuse-backend/internal/converter"
	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	convertOut     string
	convertFormat  string
	convertBinary  string
	convertTimeout time.Duration
)

// newConverter is swapped in tests.
var newConverter = func(path string, timeout time.Duration) pipeline.Converter {
	return converter.NewIfcConvert(path, nil, timeout)
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.ifc>",
	Short: "Convert every watched element of an IFC file into a mesh file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if convertFormat != pipeline.FormatGLB && convertFormat != pipeline.FormatOBJ {
			return fmt.Errorf("unsupported format %q, use %s or %s", convertFormat, pipeline.FormatGLB, pipeline.FormatOBJ)
		}
		f, err := ifc.Open(args[0])
		if err != nil {
			return err
		}

		workDir, err := os.MkdirTemp("", "ifcreuse-*")
		if err != nil {
			return fmt.Errorf("failed to create work directory: %w", err)
		}
		defer os.RemoveAll(workDir)

		out := cmd.OutOrStdout()
		p := pipeline.New(newConverter(convertBinary, convertTimeout), workDir, convertFormat)
		summary, err := p.Run(cmd.Context(), f, convertOut, func(_ context.Context, res pipeline.Result) error {
			fmt.Fprintf(out, "converted %s %s -> %s\n", res.Element.IfcType, res.Element.GUID, filepath.Join(convertOut, res.MeshName))
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%d converted, %d failed\n", summary.Converted, len(summary.Failed))
		for _, guid := range summary.Failed {
			fmt.Fprintf(out, "failed %s\n", guid)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "meshes", "directory the mesh files are written to")
	convertCmd.Flags().StringVar(&convertFormat, "format", pipeline.FormatGLB, "mesh format (glb or obj)")
	convertCmd.Flags().StringVar(&convertBinary, "ifcconvert", "IfcConvert", "path of the IfcConvert binary")
	convertCmd.Flags().DurationVar(&convertTimeout, "timeout", 2*time.Minute, "per-element conversion timeout")
}
