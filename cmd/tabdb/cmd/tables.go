package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <database>",
	Short: "List the tables of a database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance(cmd)
		if err != nil {
			printError("startup failed", err)
			return err
		}

		names, err := inst.engine.ListTables(strings.ToLower(args[0]))
		if err != nil {
			printError("list tables", err)
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List databases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := openInstance(cmd)
		if err != nil {
			printError("startup failed", err)
			return err
		}

		names, err := inst.engine.Store().ListDatabases()
		if err != nil {
			printError("list databases", err)
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(databasesCmd)
}
