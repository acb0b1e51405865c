// Command planner manages events from the terminal against the same storage as the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"eventplanner/config"
	"eventplanner/internal/app"
)

const usage = `Usage: planner <command> [flags] [args]

Commands:
  list       [-search text] [-period upcoming|today|this-week]
  create     -title ... -description ... (-date YYYY-MM-DD -time HH:MM | -when "next friday 7pm") -venue ... [-duration ...]
  create     -file event.yaml
  show       [-watch] <event-id>
  rsvp       <event-id> confirmed|declined
  toggle     <event-id>
  dashboard
  invite     [-message text] <event-id> <email>...
  export     [-o file.ics] [event-id...]
  reset
  token      -user id [-name name] [-ttl 24h]

Event ids may be abbreviated to any unique prefix.
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}
	err = run(ctx, a, os.Args[1:], os.Stdout)
	if cerr := a.Close(); cerr != nil {
		logger.Warn("closing storage", "err", cerr)
	}
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

type command func(ctx context.Context, a *app.App, args []string, out io.Writer) error

var commands = map[string]command{
	"list":      cmdList,
	"create":    cmdCreate,
	"show":      cmdShow,
	"rsvp":      cmdRSVP,
	"toggle":    cmdToggle,
	"dashboard": cmdDashboard,
	"invite":    cmdInvite,
	"export":    cmdExport,
	"reset":     cmdReset,
	"token":     cmdToken,
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, a, args[1:], out)
}
