package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AlexRiks/AccountingDesk-IA/internal/cli"
	"github.com/AlexRiks/AccountingDesk-IA/internal/engine"
	"github.com/AlexRiks/AccountingDesk-IA/internal/normalize"
)

func correctionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corrections",
		Short: "Manage learned corrections",
		Long:  `Record, list, and delete user corrections that override the external classifier.`,
	}

	cmd.AddCommand(addCorrectionCmd())
	cmd.AddCommand(listCorrectionsCmd())
	cmd.AddCommand(deleteCorrectionCmd())

	return cmd
}

func addCorrectionCmd() *cobra.Command {
	var subcategory string

	cmd := &cobra.Command{
		Use:   "add <description> <category>",
		Short: "Record a correction for a description",
		Long: `Record a user-confirmed category for a transaction description. The
correction is keyed by the normalized description, so it also covers case,
punctuation, and whitespace variants of the same text.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			// Recording a correction never touches the oracle, so no
			// provider client is needed here.
			eng := engine.New(store, store, nil, slog.Default())

			if err := eng.RecordCorrection(ctx, args[0], args[1], subcategory); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render("Correction recorded"))
			return nil
		},
	}

	cmd.Flags().StringVar(&subcategory, "subcategory", "", "subcategory for the correction")

	return cmd
}

func listCorrectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all learned corrections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetAllCorrections(ctx)
			if err != nil {
				return fmt.Errorf("failed to get corrections: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render("No corrections recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Normalized"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Subcategory"),
				cli.HeaderStyle.Render("Updated"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 30),
				strings.Repeat("-", 30),
				strings.Repeat("-", 15),
				strings.Repeat("-", 15),
				strings.Repeat("-", 10))

			// Show what the user actually typed; the normalized key is
			// secondary detail.
			for _, record := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					record.OriginalDescription,
					cli.SubtleStyle.Render(record.NormalizedDescription),
					record.Category,
					record.Subcategory,
					record.UpdatedAt.Format("2006-01-02"))
			}

			return nil
		},
	}
}

func deleteCorrectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <description>",
		Short: "Delete the correction for a description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			normalized := normalize.Normalize(args[0])
			if err := store.DeleteCorrection(ctx, normalized); err != nil {
				return fmt.Errorf("failed to delete correction: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Correction deleted"))
			return nil
		},
	}
}
