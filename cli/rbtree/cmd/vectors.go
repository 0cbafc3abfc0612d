package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/rbtree/internal/elements"
)

var vectorType = &elementType[elements.Vector]{
	name:    "vector",
	load:    elements.LoadVectors,
	parse:   elements.ParseVector,
	compare: elements.CompareVectors,
	free:    elements.FreeVector,
	format:  elements.Vector.String,
}

func newVectorsCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &inputConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "vectors FILE...",
		Short: "Loads vectors and prints the one with the largest norm",
		Long: `Loads vectors from the input files into a sorted set. Vectors whose components differ by at most ` +
			fmt.Sprint(elements.Epsilon) + ` are considered equal, only the first of them is kept.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVectors(cmd, config, args)
		},
	}
	config.addFlags(cmd)
	return cmd
}

func runVectors(cmd *cobra.Command, config *inputConfig, files []string) error {
	tr, err := vectorType.buildTree(cmd.Context(), config, files)
	if err != nil {
		return err
	}
	defer tr.Destroy()

	consoleWriter.Println(fmt.Sprintf("vectors: %d", tr.Len()))
	maxV, err := elements.MaxNormVector(tr)
	if err != nil {
		return fmt.Errorf("finding max norm vector: %w", err)
	}
	if maxV != nil {
		consoleWriter.Println("max norm vector: " + maxV.String())
	}
	return nil
}
