package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/horizonkit/texpack"
)

var validateCmd = &cobra.Command{
	Use:   "validate <name> [name...]",
	Short: "Check material names against the naming grammar",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid := validateNames(cmd.OutOrStdout(), args)
		if invalid > 0 {
			return fmt.Errorf("%d of %d names invalid", invalid, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validateNames prints one line per name and returns how many were invalid.
func validateNames(w io.Writer, names []string) int {
	invalid := 0
	for _, name := range names {
		res := texpack.ValidateName(name)
		if res.Valid {
			fmt.Fprintf(w, "PASS  %s\n", name)
			continue
		}
		invalid++
		fmt.Fprintf(w, "FAIL  %s: %s (suggestion: %s)\n", name, res.Reason, res.Suggested)
	}
	return invalid
}
