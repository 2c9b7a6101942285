package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newElementTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "element-type <file> <class> <field> <index>",
		Short: "Print the element type at a type argument index of a generic field",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[3], err)
			}
			r, _, err := loadClasses(args[:1])
			if err != nil {
				return err
			}
			f, err := lookupField(r, args[1], args[2])
			if err != nil {
				return err
			}

			t, ok := f.ElementType(index)
			if !ok {
				return fmt.Errorf("%s has no concrete element type at index %d", f.GenericString(), index)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t)
			return nil
		},
	}
}
