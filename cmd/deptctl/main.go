package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/target/deptdash/config"
	"github.com/target/deptdash/internal/bootstrap"
	"github.com/target/deptdash/internal/ports"
	"github.com/target/deptdash/internal/service"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Workspace *service.Workspace
	Out       io.Writer
	In        io.Reader

	services *bootstrap.ServiceContainer
}

func (c *commandContext) close() error {
	return c.services.Close()
}

var errUsage = errors.New("usage")

func main() {
	logger := bootstrap.InitLoggerTo(os.Stderr, slog.LevelWarn)

	global := flag.NewFlagSet("deptctl", flag.ContinueOnError)
	global.SetOutput(os.Stderr)
	profile := global.String("profile", "", "session profile (default $SESSION_PROFILE)")
	global.Usage = func() { _ = printUsage(os.Stderr) }
	if err := global.Parse(os.Args[1:]); err != nil {
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status on bad flags
	}

	rest := global.Args()
	if len(rest) == 0 {
		_ = printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}
	cmd, ok := commands()[rest[0]]
	if !ok {
		_ = writef(os.Stderr, "unknown command %q\n\n", rest[0])
		_ = printUsage(os.Stderr)
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, runParams{Config: &cfg, Logger: logger, Profile: *profile, Command: cmd, Args: rest[1:]})
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate command status to callers
}

type runParams struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	Profile string
	Command command
	Args    []string
}

func run(ctx context.Context, p runParams) int {
	backend, err := bootstrap.NewTokenBackend(ctx, bootstrap.TokenBackendDeps{Config: p.Config, Logger: p.Logger})
	if err != nil {
		p.Logger.Error("open token backend", "error", err)
		return 1
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			p.Logger.Warn("close token backend failed", "error", cerr)
		}
	}()

	profile := p.Profile
	if profile == "" {
		profile = p.Config.Session.Profile
	}
	cmdCtx, err := newCommandContext(ctx, p.Config, backend.Backend, profile, p.Logger)
	if err != nil {
		p.Logger.Error("build client", "error", err)
		return 1
	}
	defer func() {
		if cerr := cmdCtx.close(); cerr != nil {
			p.Logger.Warn("close services failed", "error", cerr)
		}
	}()
	return exitCode(p.Command.run(cmdCtx, p.Args))
}

func newCommandContext(ctx context.Context, cfg *config.AppConfig, backend ports.TokenBackend, profile string, logger *slog.Logger) (*commandContext, error) {
	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{Config: cfg, Backend: backend, Logger: logger})
	if err != nil {
		return nil, err
	}
	return &commandContext{
		Ctx:       ctx,
		Logger:    logger,
		Workspace: services.Workspaces.For(profile),
		Out:       os.Stdout,
		In:        os.Stdin,
		services:  services,
	}, nil
}

// exitCode prints command errors for humans; structured logs stay on stderr at warn.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		_ = writef(os.Stderr, "Error: %s\n", userMessage(err))
		return 1
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in and store the session token",
			run:         runLogin,
		},
		"register": {
			name:        "register",
			description: "Create an account (log in afterwards)",
			run:         runRegister,
		},
		"logout": {
			name:        "logout",
			description: "Forget the stored session token",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			description: "Show whether a session token is stored",
			run:         runStatus,
		},
		"list": {
			name:        "list",
			description: "List departments",
			run:         runList,
		},
		"add": {
			name:        "add",
			description: "Add a department and print the refreshed list",
			run:         runAdd,
		},
		"delete": {
			name:        "delete",
			description: "Delete a department by id and print the refreshed list",
			run:         runDelete,
		},
		"get": {
			name:        "get",
			description: "Show one or more departments by id",
			run:         runGet,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: deptctl [-profile name] <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-10s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
