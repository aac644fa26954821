package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spektr-org/lens/describe"
	"github.com/spektr-org/lens/drill"
	"github.com/spektr-org/lens/helpers"
	"github.com/spektr-org/lens/query"
	"github.com/spektr-org/lens/render"
	"github.com/spektr-org/lens/schema"
)

// ============================================================================
// LENS CLI — Describe and drill structured queries from the terminal
// ============================================================================

const version = "0.1.0"

var (
	log     zerolog.Logger
	verbose bool

	queryPath string
	tablePath string
)

func main() {
	root := &cobra.Command{
		Use:     "lens",
		Short:   "Readable descriptions and drill-downs for structured queries",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVarP(&queryPath, "query", "q", "", "path to query JSON (required)")
	root.PersistentFlags().StringVarP(&tablePath, "table", "t", "", "path to table metadata JSON (required)")

	root.AddCommand(describeCmd(), distributionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadInputs() (*schema.Table, *query.StructuredQuery, error) {
	if queryPath == "" || tablePath == "" {
		return nil, nil, fmt.Errorf("both --query and --table are required")
	}
	table, err := helpers.LoadTable(tablePath)
	if err != nil {
		return nil, nil, err
	}
	q, err := helpers.LoadQuery(queryPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Str("table", table.Name).
		Int("aggregations", len(q.Aggregations)).
		Int("breakouts", len(q.Breakouts)).
		Msg("inputs loaded")
	return table, q, nil
}

func describeCmd() *cobra.Command {
	var (
		styled   bool
		sections []string
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the readable description of a query",
		Example: `  lens describe -q query.json -t orders.json
  lens describe -q query.json -t orders.json --styled --sections table,filter`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, q, err := loadInputs()
			if err != nil {
				return err
			}
			opts := describe.Options{}
			for _, s := range sections {
				opts.Sections = append(opts.Sections, describe.Section(strings.TrimSpace(s)))
			}
			frags := describe.Describe(table, q, opts)
			if styled {
				fmt.Println(render.Styled(frags))
			} else {
				fmt.Println(render.Plain(frags))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&styled, "styled", false, "style metric/segment/field labels")
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "sections to render, in order (default all)")
	return cmd
}

func distributionCmd() *cobra.Command {
	var fieldID int64
	cmd := &cobra.Command{
		Use:   "distribution",
		Short: "Rewrite the query into a count-by-field histogram",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, q, err := loadInputs()
			if err != nil {
				return err
			}
			field, ok := table.Field(fieldID)
			if !ok {
				return fmt.Errorf("field %d not found in table %q", fieldID, table.Name)
			}
			col := schema.Column{
				Ref:            query.FieldID{ID: field.ID},
				Kind:           field.Kind,
				DefaultBinning: field.DefaultBinning,
			}
			out, applied := drill.Distribution(q, col)
			if !applied {
				return fmt.Errorf("distribution does not apply to this query")
			}
			log.Debug().Int64("field", fieldID).Msg("distribution drill applied")
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
	cmd.Flags().Int64Var(&fieldID, "field", 0, "field id to histogram (required)")
	_ = cmd.MarkFlagRequired("field")
	return cmd
}
