package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexRiks/AccountingDesk-IA/internal/cli"
	"github.com/AlexRiks/AccountingDesk-IA/internal/common"
	"github.com/AlexRiks/AccountingDesk-IA/internal/importer"
	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
	"github.com/AlexRiks/AccountingDesk-IA/internal/service"
)

func importCmd() *cobra.Command {
	var maxRetries int

	cmd := &cobra.Command{
		Use:   "import <statement.csv>",
		Short: "Classify a whole CSV statement",
		Long: `Read a CSV statement export (date, description, amount columns) and
classify every row. Transient oracle failures are retried with exponential
backoff; each description is an independent unit of work.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer func() { _ = f.Close() }()

			transactions, err := importer.ParseStatement(f)
			if err != nil {
				return err
			}
			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("Statement has no usable rows."))
				return nil
			}

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

			retryOpts := service.RetryOptions{
				MaxAttempts:  maxRetries,
				InitialDelay: time.Second,
				MaxDelay:     30 * time.Second,
				Multiplier:   2.0,
			}

			imp := importer.New(eng, retryOpts, slog.Default())
			results := imp.ClassifyAll(ctx, transactions)

			errored := printImportResults(results)
			common.LogInfo("statement import finished", common.Fields{
				"file":    args[0],
				"rows":    len(results),
				"errored": errored,
			})
			return nil
		},
	}

	cmd.Flags().IntVar(&maxRetries, "max-retries", 3, "retry attempts for transient oracle failures")

	return cmd
}

func printImportResults(results []model.ClassifiedTransaction) int {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Description"),
		cli.HeaderStyle.Render("Amount"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Source"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 30),
		strings.Repeat("-", 10),
		strings.Repeat("-", 25),
		strings.Repeat("-", 12))

	errored := 0
	for _, ct := range results {
		label := ct.Result.Category
		if ct.Result.Subcategory != "" {
			label = ct.Result.Category + " - " + ct.Result.Subcategory
		}
		if ct.Result.IsError() {
			errored++
			label = cli.ErrorStyle.Render(label)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ct.Transaction.Date.Format("2006-01-02"),
			ct.Transaction.Description,
			ct.Transaction.Amount.StringFixed(2),
			label,
			string(ct.Result.Source))
	}

	if errored > 0 {
		fmt.Fprintln(os.Stderr, cli.WarningStyle.Render(
			fmt.Sprintf("%d of %d rows failed classification", errored, len(results))))
	}

	return errored
}
