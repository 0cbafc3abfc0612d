package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alphabill-org/rbtree/internal/elements"
)

var wordType = &elementType[string]{
	name:    "word",
	load:    elements.LoadWords,
	parse:   func(s string) (string, error) { return s, nil },
	compare: elements.CompareWords,
	free:    elements.FreeWord,
	format:  strconv.Quote,
}

func newWordsCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &inputConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "words FILE...",
		Short: "Loads words and prints them in ascending order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWords(cmd, config, args)
		},
	}
	config.addFlags(cmd)
	return cmd
}

func runWords(cmd *cobra.Command, config *inputConfig, files []string) error {
	tr, err := wordType.buildTree(cmd.Context(), config, files)
	if err != nil {
		return err
	}
	defer tr.Destroy()

	consoleWriter.Println(fmt.Sprintf("words: %d", tr.Len()))
	consoleWriter.Print(elements.ConcatenateWords(tr))
	return nil
}
