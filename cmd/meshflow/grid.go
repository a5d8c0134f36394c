package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Deltares-research/DHYDROGUI-sub073/internal/core/mesh"
	"github.com/Deltares-research/DHYDROGUI-sub073/pkg/serialization"
)

func newGridCmd() *cobra.Command {
	var (
		cellsX, cellsY int
		dx, dy         float64
		name, crs      string
	)
	cmd := &cobra.Command{
		Use:   "grid <output>",
		Short: "Write a regular quadrilateral grid",
		Long: "Writes a cellsX by cellsY grid of rectangular cells. The file format " +
			"follows the extension: .json, .msgpack or .mesh.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mesh.NewRegularGrid(cellsX, cellsY, dx, dy)
			if err != nil {
				return err
			}
			if name != "" {
				m.Name = name
			}
			m.CoordinateSystem = crs
			if err := serialization.WriteMeshFile(args[0], m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d vertices, %d edges, %d cells\n",
				args[0], len(m.Vertices), len(m.Edges), len(m.Cells))
			return nil
		},
	}
	cmd.Flags().IntVar(&cellsX, "nx", 3, "cells in x direction")
	cmd.Flags().IntVar(&cellsY, "ny", 3, "cells in y direction")
	cmd.Flags().Float64Var(&dx, "dx", 1, "cell width")
	cmd.Flags().Float64Var(&dy, "dy", 1, "cell height")
	cmd.Flags().StringVar(&name, "name", "", "mesh name (default regular-<nx>x<ny>)")
	cmd.Flags().StringVar(&crs, "crs", "", "coordinate system, e.g. EPSG:28992")
	return cmd
}
