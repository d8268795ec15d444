package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"tabDB/internal/engine"
	"tabDB/internal/metrics"
	"time"

	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive prompt",
	Long: `Reads one command per line and prints the response. A command may
span several lines; input is sent once a line ends with ';'. Type exit or
quit to leave.`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	inst, err := openInstance(cmd)
	if err != nil {
		printError("startup failed", err)
		return err
	}

	if inst.cfg.Metrics.Addr != "" {
		srv := serveMetrics(inst)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	server := engine.NewServer(inst.engine)
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	var pending []string
	prompt := func() {
		p := "tabdb> "
		if db := server.Database(); db != "" {
			p = "tabdb:" + db + "> "
		}
		if len(pending) > 0 {
			p = "   ... "
		}
		fmt.Fprint(out, promptStyle.Render(p))
	}

	for prompt(); scanner.Scan(); prompt() {
		line := strings.TrimSpace(scanner.Text())
		if len(pending) == 0 {
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit":
				return nil
			}
		}

		pending = append(pending, line)
		if !strings.HasSuffix(line, ";") {
			continue
		}
		command := strings.Join(pending, " ")
		pending = pending[:0]

		fmt.Fprint(out, styleResponse(server.HandleCommand(command)))
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func serveMetrics(inst *instance) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(inst.registry))
	srv := &http.Server{
		Addr:              inst.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		inst.log.Info("metrics listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			inst.log.Error("metrics server failed", "error", err)
			fmt.Fprintln(os.Stderr, errorStyle.Render("metrics server failed:"), err)
		}
	}()
	return srv
}
