package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <idea...>",
		Short: "Analyze a startup idea and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			res, err := a.ideas.Analyze(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newTrendingCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Print trending software products as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()

			return printJSON(cmd.OutOrStdout(), a.catalog.List(cmd.Context(), category))
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", `Category filter ("All" or empty for no filter)`)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
