package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jreflect/java/reflect"
)

func newGetCmd() *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{
		Use:   "get <file> <class> <field>",
		Short: "Print the value of a field",
		Long: `Print the value of a field. Static fields start with their compiled
constant value; instance fields are read from a freshly allocated object.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := loadClasses(args[:1])
			if err != nil {
				return err
			}
			f, err := lookupField(r, args[1], args[2])
			if err != nil {
				return err
			}

			var obj *reflect.Object
			if !f.IsStatic() {
				if obj, err = r.New(args[1]); err != nil {
					return err
				}
			}
			if accessible {
				f.SetAccessible(true)
			}
			v, err := f.Get(obj)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&accessible, "accessible", "a", false, "suppress visibility checks")

	return cmd
}

func formatValue(v reflect.Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case uint16:
		return fmt.Sprintf("'%c'", rune(v))
	case *reflect.Array:
		parts := make([]string, len(v.Elements))
		for i, e := range v.Elements {
			parts[i] = formatValue(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}
