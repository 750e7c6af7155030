package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/CTAG07/ngramgen/pkg/ngram"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats N FILE...",
		Short: "Train an N-gram model on FILEs and print its statistics",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parsePositive(args[0])
			if err != nil {
				return err
			}

			gen := ngram.NewGenerator(ngram.NewDefaultTokenizer())
			gen.SetLogger(a.logger)
			model, err := trainFiles(gen, n, args[1:])
			if err != nil {
				return err
			}

			data, err := marshalStats(model.Stats(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml|json)")

	return cmd
}

func marshalStats(stats ngram.ModelStats, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(stats)
	case "json":
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown stats format %s", strconv.Quote(format))
	}
}
