package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AlexRiks/AccountingDesk-IA/internal/catalog"
	"github.com/AlexRiks/AccountingDesk-IA/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category catalog",
		Long:  `List the category catalog or replace it from an administrative CSV feed.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(loadCategoriesCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all catalog entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("Catalog is empty. Use 'accountingdesk categories load' to import a feed."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Subcategory"))
			fmt.Fprintf(w, "%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 20))

			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\n", entry.Category, entry.Subcategory)
			}

			return nil
		},
	}
}

func loadCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <feed.csv>",
		Short: "Replace the catalog from a CSV feed",
		Long: `Replace the whole category catalog from a two-column CSV feed with
"category" and "subcategory" headers. The load is idempotent; malformed rows
are skipped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open feed: %w", err)
			}
			defer func() { _ = f.Close() }()

			entries, err := catalog.ParseFeed(f)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ReplaceCategories(ctx, entries); err != nil {
				return fmt.Errorf("failed to replace catalog: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Loaded %d catalog entries", len(entries))))
			return nil
		},
	}
}
