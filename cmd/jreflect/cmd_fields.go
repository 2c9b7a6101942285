package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jreflect/format"
)

func newFieldsCmd() *cobra.Command {
	var (
		outputFormat string
		className    string
	)

	cmd := &cobra.Command{
		Use:   "fields <file>...",
		Short: "List the declared fields of classes from .class files or YAML definitions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, classes, err := loadClasses(args)
			if err != nil {
				return err
			}
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			found := false
			for _, c := range classes {
				if className != "" && c.Name() != className {
					continue
				}
				found = true
				if err := enc.Encode(c); err != nil {
					return fmt.Errorf("encode %s: %w", outputFormat, err)
				}
			}
			if className != "" && !found {
				return fmt.Errorf("class %s not found in %v", className, args)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().StringVarP(&className, "class", "c", "", "only list fields of this class")

	return cmd
}
