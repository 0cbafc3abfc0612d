package cmd

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/alphabill-org/rbtree/internal/elements"
)

var unitIDType = &elementType[*uint256.Int]{
	name:    "unit id",
	load:    elements.LoadUnitIDs,
	parse:   elements.ParseUnitID,
	compare: elements.CompareUnitIDs,
	free:    elements.FreeUnitID,
	format:  elements.FormatUnitID,
}

type idsConfig struct {
	inputConfig
	PrintTree bool
}

func newIDsCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &idsConfig{inputConfig: inputConfig{Base: baseConfig}}
	var cmd = &cobra.Command{
		Use:   "ids FILE...",
		Short: "Loads unit identifiers and prints the sorted unique set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIDs(cmd, config, args)
		},
	}
	config.addFlags(cmd)
	cmd.Flags().BoolVar(&config.PrintTree, "tree", false, "print the shape of the tree instead of the list")
	return cmd
}

func runIDs(cmd *cobra.Command, config *idsConfig, files []string) error {
	tr, err := unitIDType.buildTree(cmd.Context(), &config.inputConfig, files)
	if err != nil {
		return err
	}
	defer tr.Destroy()

	consoleWriter.Println(fmt.Sprintf("unit ids: %d", tr.Len()))
	if config.PrintTree {
		consoleWriter.Print(tr.String())
		return nil
	}
	tr.ForEach(func(id *uint256.Int) bool {
		consoleWriter.Println(elements.FormatUnitID(id))
		return true
	})
	return nil
}
