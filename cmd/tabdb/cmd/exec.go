package cmd

import (
	"errors"
	"fmt"
	"strings"
	"tabDB/internal/engine"

	"github.com/spf13/cobra"
)

var execDatabase string

var execCmd = &cobra.Command{
	Use:   "exec <command>...",
	Short: "Run commands and print their responses",
	Example: `  tabdb exec --db school "SELECT * FROM marks;"
  tabdb exec "CREATE DATABASE shop;" "CREATE TABLE items (name, price);"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringVar(&execDatabase, "db", "", "database to USE before running the commands")
	rootCmd.AddCommand(execCmd)
}

// errCommandFailed makes the process exit non-zero when any command
// answered [ERROR].
var errCommandFailed = errors.New("one or more commands failed")

func runExec(cmd *cobra.Command, args []string) error {
	inst, err := openInstance(cmd)
	if err != nil {
		printError("startup failed", err)
		return err
	}

	server := engine.NewServer(inst.engine)
	commands := args
	if execDatabase != "" {
		commands = append([]string{"USE " + execDatabase + ";"}, args...)
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, c := range commands {
		resp := server.HandleCommand(c)
		if strings.HasPrefix(resp, "[ERROR]") {
			failed = true
		}
		fmt.Fprint(out, styleResponse(resp))
	}

	if failed {
		return errCommandFailed
	}
	return nil
}
