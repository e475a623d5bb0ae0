package main

import (
	"fmt"

	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Decode a .class file and dump its fields and methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			encoder := format.New(outputFormat, cmd.OutOrStdout())
			if encoder == nil || outputFormat == "zones" {
				return fmt.Errorf("unknown format: %s (expected line or json)", outputFormat)
			}

			class, err := loadClass(args[0])
			if err != nil {
				return err
			}

			if err := encoder.Encode(class); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}
