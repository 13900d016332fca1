package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"ifc-reuse-backend/internal/ifc"
	"ifc-reuse-backend/internal/storage"

	"github.com/spf13/cobra"
)

var (
	markOut   string
	markUnset bool
)

var markReusableCmd = &cobra.Command{
	Use:   "mark-reusable <file.ifc> <guid>...",
	Short: "Write the reuse flag of the given elements into a derived IFC file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]
		f, err := ifc.Open(src)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		marked := 0
		seen := make(map[string]bool)
		for _, raw := range args[1:] {
			guid := strings.TrimSpace(raw)
			if seen[guid] {
				continue
			}
			seen[guid] = true

			if !ifc.ValidGUID(guid) {
				fmt.Fprintf(out, "skipped %s: not a valid GlobalId\n", raw)
				continue
			}
			e := f.ByGUID(guid)
			if !f.IsProduct(e) {
				fmt.Fprintf(out, "not found %s\n", guid)
				continue
			}
			f.MarkReusable(e, !markUnset)
			marked++
		}
		if marked == 0 {
			return fmt.Errorf("no components were marked")
		}

		dst := markOut
		if dst == "" {
			dst = filepath.Join(filepath.Dir(src), storage.DerivedName(filepath.Base(src)))
		}
		if err := f.WriteFile(dst); err != nil {
			return err
		}
		fmt.Fprintf(out, "%d components marked, written to %s\n", marked, dst)
		return nil
	},
}

func init() {
	markReusableCmd.Flags().StringVar(&markOut, "out", "", "output file (default updated_<name> next to the input)")
	markReusableCmd.Flags().BoolVar(&markUnset, "unset", false, "write Reusable=false instead of true")
}
