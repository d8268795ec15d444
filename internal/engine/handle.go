package engine

import (
	"fmt"
	"strings"
	"tabDB/internal/dberr"
	"tabDB/internal/metrics"
	"tabDB/internal/sql"
	"tabDB/internal/table"
	"time"

	"github.com/google/uuid"
)

const (
	tagOK    = "[OK]\n"
	tagError = "[ERROR]\n"
)

// HandleCommand runs one command for sess and returns the response text:
// "[OK]\n" optionally followed by a rendered table, or "[ERROR]\n<msg>\n".
// It never panics and never returns an empty string.
func (e *DBEngine) HandleCommand(sess *Session, command string) (resp string) {
	id := uuid.NewString()
	start := time.Now()
	kind := "unknown"

	defer func() {
		if r := recover(); r != nil {
			e.log.Error("command panicked", "command_id", id, "panic", fmt.Sprint(r))
			resp = formatError(dberr.New(dberr.KindInternal, "Command Execution Failure"))
			e.metrics.ObserveCommand(kind, metrics.StatusError, time.Since(start))
		}
	}()

	result, stmtKind, err := e.run(sess, command)
	if stmtKind != "" {
		kind = stmtKind
	}
	elapsed := time.Since(start)

	if err != nil {
		e.log.Warn("command failed",
			"command_id", id,
			"kind", kind,
			"database", sess.Database,
			"error_kind", dberr.KindOf(err).String(),
			"error", err,
		)
		e.metrics.ObserveCommand(kind, metrics.StatusError, elapsed)
		return formatError(err)
	}

	e.log.Debug("command handled",
		"command_id", id,
		"kind", kind,
		"database", sess.Database,
		"duration", elapsed,
	)
	e.metrics.ObserveCommand(kind, metrics.StatusOK, elapsed)
	return formatOK(result)
}

// run tokenizes, checks the token limit, parses and executes.
func (e *DBEngine) run(sess *Session, command string) (*table.Result, string, error) {
	tokens := sql.Tokenize(command)
	if len(tokens) > e.limits.MaxTokens {
		return nil, "", errTokenLimit
	}

	stmt, err := sql.ParseTokens(tokens)
	if err != nil {
		return nil, "", err
	}

	result, err := e.Execute(sess, stmt)
	return result, stmt.Kind(), err
}

func formatOK(result *table.Result) string {
	if result == nil {
		return tagOK
	}
	return tagOK + result.String()
}

func formatError(err error) string {
	var b strings.Builder
	b.WriteString(tagError)
	b.WriteString(dberr.Message(err))
	b.WriteByte('\n')
	return b.String()
}
