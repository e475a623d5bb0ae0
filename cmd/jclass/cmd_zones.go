package main

import (
	"fmt"

	"github.com/dhamidi/jclass/format"
	"github.com/spf13/cobra"
)

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones <file>",
		Short: "List the named byte regions of a .class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := loadClass(args[0])
			if err != nil {
				return err
			}
			if err := format.NewZoneEncoder(cmd.OutOrStdout()).Encode(class); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
}
