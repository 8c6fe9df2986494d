package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/intit/supplier-enrich/internal/dataset"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a supplier dataset between CSV and JSON",
	Long: `Converts a supplier CSV to the JSON working format, or a JSON working
file back to CSV. The direction is inferred from the input extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		switch {
		case strings.HasSuffix(path, ".csv"):
			records, err := dataset.FromCSV(path)
			if err != nil {
				return err
			}
			out := convertOut
			if out == "" {
				out = dataset.JSONPath(path)
			}
			if err := dataset.NewFileStore(out).Save(ctx, records); err != nil {
				return err
			}
			rows, err := dataset.CountCSVRows(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d rows, %d records)\n", out, rows, len(records))
			return nil

		case strings.HasSuffix(path, ".json"):
			records, err := dataset.NewFileStore(path).Load(ctx)
			if err != nil {
				return err
			}
			out := convertOut
			if out == "" {
				out = strings.TrimSuffix(path, ".json") + ".csv"
			}
			if err := dataset.ToCSV(out, records); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d records)\n", out, len(records))
			return nil

		default:
			return eris.Errorf("convert: unsupported extension on %q (want .csv or .json)", path)
		}
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertOut, "out", "", "output path (default derived from input)")
	rootCmd.AddCommand(convertCmd)
}
