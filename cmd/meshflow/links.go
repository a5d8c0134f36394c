package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
)

func newLinksCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "links <mesh-file>",
		Short: "List the flow links stored in a mesh file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := serialization.ReadMeshFile(args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Edge", "Vertices", "Cell from", "Cell to"})
			table.SetAlignment(tablewriter.ALIGN_RIGHT)
			for i, l := range m.FlowLinks {
				if limit > 0 && i >= limit {
					break
				}
				table.Append([]string{
					strconv.Itoa(i),
					strconv.Itoa(l.EdgeIndex),
					fmt.Sprintf("%d-%d", l.Edge.VertexFromIndex, l.Edge.VertexToIndex),
					strconv.Itoa(l.CellFromIndex),
					strconv.Itoa(l.CellToIndex),
				})
			}
			table.Render()
			fmt.Fprintf(cmd.OutOrStdout(), "%d flow links\n", len(m.FlowLinks))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "print at most this many links (0 for all)")
	return cmd
}
