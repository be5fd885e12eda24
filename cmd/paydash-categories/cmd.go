package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"paydash/internal/core/category"
	"paydash/internal/platform/config"

	"github.com/spf13/cobra"
)

func rootCmd() *cobra.Command {
	var csvPath string
	root := &cobra.Command{
		Use:           "paydash-categories",
		Short:         "Inspect the job title category CSV",
		Long:          "Loads the Title,CategorizedTitle CSV the API uses and answers lookups against it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&csvPath, "csv", config.New().MayString("CATEGORIES_CSV", ""),
		"Path to the category CSV (default $CATEGORIES_CSV)")

	load := func(cmd *cobra.Command) (*category.Index, int, error) {
		if strings.TrimSpace(csvPath) == "" {
			return nil, 0, errors.New("no category csv: pass --csv or set CATEGORIES_CSV")
		}
		recs, err := category.CSVFile{Path: csvPath}.Records(cmd.Context())
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", csvPath, err)
		}
		return category.Build(recs), len(recs), nil
	}

	root.AddCommand(listCmd(load), lookupCmd(load), titlesCmd(load), checkCmd(load))
	return root
}

type loader func(*cobra.Command) (*category.Index, int, error)

func listCmd(load loader) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories with their title counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, _, err := load(cmd)
			if err != nil {
				return err
			}
			type row struct {
				Name   string `json:"name"`
				Titles int    `json:"titles"`
			}
			rows := make([]row, 0, len(ix.Categories()))
			for _, c := range ix.Categories() {
				rows = append(rows, row{Name: c, Titles: ix.TitleCount(c)})
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tTITLES")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%d\n", r.Name, r.Titles)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func lookupCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <title>...",
		Short: "Print the category of each job title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := load(cmd)
			if err != nil {
				return err
			}
			for _, t := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", t, ix.Lookup(t))
			}
			return nil
		},
	}
}

func titlesCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "titles <category>",
		Short: "Print the job titles mapped to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, _, err := load(cmd)
			if err != nil {
				return err
			}
			titles := ix.TitlesForCategory(args[0])
			if len(titles) == 0 {
				return fmt.Errorf("category %q has no titles", args[0])
			}
			for _, t := range titles {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}

func checkCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse the CSV and print row, title and category counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, rows, err := load(cmd)
			if err != nil {
				return err
			}
			if ix.Len() == 0 {
				return fmt.Errorf("%d rows but no usable titles", rows)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rows=%d titles=%d categories=%d\n", rows, ix.Len(), len(ix.Categories()))
			return nil
		},
	}
}
