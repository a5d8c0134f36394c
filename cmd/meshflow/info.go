package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/app/dto"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/validation"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <mesh-file>",
		Short: "Describe a mesh file and check its topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := serialization.ReadMeshFile(args[0])
			if err != nil {
				return err
			}
			info := dto.MeshInfoFrom(m)

			topology := "ok"
			if err := validation.ValidateMesh(m, validation.MeshValidationOptions{RejectDuplicateEdges: true}); err != nil {
				topology = err.Error()
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Property", "Value"})
			table.AppendBulk([][]string{
				{"ID", info.ID},
				{"Name", info.Name},
				{"Coordinate system", info.CoordinateSystem},
				{"Vertices", strconv.Itoa(info.Vertices)},
				{"Edges", strconv.Itoa(info.Edges)},
				{"Cells", strconv.Itoa(info.Cells)},
				{"Flow links", strconv.Itoa(info.FlowLinks)},
				{"Extent", fmt.Sprintf("(%g, %g) - (%g, %g)", info.Extent.MinX, info.Extent.MinY, info.Extent.MaxX, info.Extent.MaxY)},
				{"Topology", topology},
			})
			table.Render()
			return nil
		},
	}
}
