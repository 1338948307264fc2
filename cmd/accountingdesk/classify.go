package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexRiks/AccountingDesk-IA/internal/cli"
	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a single transaction description",
		Long: `Classify a transaction description. A stored correction for the
normalized description wins outright; otherwise the external classifier is
consulted against the category catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, closeOracle, err := initEngine(ctx, store)
			if err != nil {
				return err
			}
			defer closeOracle()

			result := eng.Classify(ctx, args[0])
			printResult(result)
			return nil
		},
	}
}

func printResult(result model.ClassificationResult) {
	label := result.Category
	if result.Subcategory != "" {
		label = result.Category + " - " + result.Subcategory
	}

	switch result.Source {
	case model.SourceCorrection:
		fmt.Println(cli.SuccessStyle.Render(label), cli.SubtleStyle.Render("(correction)"))
	case model.SourceOracle:
		fmt.Println(cli.SuccessStyle.Render(label), cli.SubtleStyle.Render("(oracle)"))
	case model.SourceUncategorized:
		fmt.Println(cli.WarningStyle.Render(label))
	case model.SourceError:
		fmt.Println(cli.ErrorStyle.Render(label))
	}
}
