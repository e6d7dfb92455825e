package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/pocketledger/internal/calculator"
	"github.com/mmynk/pocketledger/internal/ledger"
	"github.com/mmynk/pocketledger/internal/models"
)

func categoryHelp() string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (c *cli) addCmd() *cobra.Command {
	var title, amount, date, category string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fields, err := models.ParseExpenseFields(title, amount, date, category)
			if err != nil {
				return err
			}
			e := c.session.Ledger.Add(cmd.Context(), fields)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", e.ID, c.format(e))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "what the money was spent on")
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent")
	cmd.Flags().StringVar(&date, "date", models.Today().String(), "date spent (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", string(models.CategoryOther), "one of: "+categoryHelp())
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (c *cli) editCmd() *cobra.Command {
	var title, amount, date, category string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := c.session.Ledger.Get(args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if !f.Changed("title") {
				title = existing.Title
			}
			if !f.Changed("amount") {
				amount = existing.Amount.String()
			}
			if !f.Changed("date") {
				date = existing.Date.String()
			}
			if !f.Changed("category") {
				category = string(existing.Category)
			}
			fields, err := models.ParseExpenseFields(title, amount, date, category)
			if err != nil {
				return err
			}
			if c.session.Ledger.Update(cmd.Context(), existing.ID, fields) {
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", existing.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	return cmd
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if c.session.Ledger.Delete(cmd.Context(), args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			}
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var search, category string
	var recent bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cat models.Category
			if category != "" {
				parsed, err := models.ParseCategory(category)
				if err != nil {
					return err
				}
				cat = parsed
			}

			var expenses []models.Expense
			if recent {
				expenses = calculator.Filter(c.session.Ledger.Recent(), search, cat)
			} else {
				expenses = calculator.SortByDate(c.session.Ledger.Filter(search, cat))
			}
			if len(expenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses found.")
				return nil
			}
			c.writeExpenses(cmd.OutOrStdout(), expenses)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "only titles containing this text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().BoolVar(&recent, "recent", false, "only the five most recent expenses")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize spending",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cur := c.session.Settings.Currency()
			total := c.session.Ledger.Total()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Total spent:    %s\n", ledger.FormatAmount(total, cur))
			fmt.Fprintf(out, "Monthly budget: %s (%s%% used)\n",
				ledger.FormatAmount(calculator.MonthlyBudget, cur),
				calculator.Share(total, calculator.MonthlyBudget).StringFixed(1))
			fmt.Fprintln(out)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tAMOUNT\tSHARE")
			for _, ct := range c.session.Ledger.TopCategories(top) {
				fmt.Fprintf(w, "%s\t%s\t%s%%\n",
					ct.Category.DisplayName(),
					ledger.FormatAmount(ct.Amount, cur),
					calculator.Share(ct.Amount, total).StringFixed(1))
			}
			w.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", -1, "show only the largest N categories")
	return cmd
}

func (c *cli) format(e models.Expense) string {
	return ledger.FormatAmount(e.Amount, c.session.Settings.Currency())
}

func (c *cli) writeExpenses(out io.Writer, expenses []models.Expense) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tCATEGORY\tAMOUNT")
	for _, e := range expenses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Title, e.Category.DisplayName(), c.format(e))
	}
	w.Flush()
}
