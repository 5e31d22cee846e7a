package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vsinha/wavecalc/pkg/domain/services/formulas"
	"github.com/vsinha/wavecalc/pkg/infrastructure/config"
	"github.com/vsinha/wavecalc/pkg/interfaces/cli/output"
)

func newSymbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List the quantity abbreviations and their units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.WriteSymbolList(cmd.OutOrStdout())
			return nil
		},
	}
}

func newFormulasCommand() *cobra.Command {
	var dependents bool

	cmd := &cobra.Command{
		Use:   "formulas",
		Short: "Show the formulas tried for each quantity, in fallback order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := formulas.Default()
			validator := formulas.NewTableValidator()
			if err := validator.Validate(table).Err(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			output.WriteFormulaTable(out, table)
			if dependents {
				fmt.Fprint(out, "\nRead by:\n")
				output.WriteDependents(out, validator.Dependents(table))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dependents, "dependents", false, "also list which targets read each quantity")
	return cmd
}

func newInitConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Default().Write(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
}
