package handler

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rl1809/invstrar/internal/core/service"
)

// Exit codes returned by ExitCode.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitNotFound = 3
	ExitConflict = 4
)

var ErrUsage = errors.New("usage")

type command func(ctx context.Context, args []string) error

// CLIHandler maps command lines onto service calls and prints results as
// JSON or aligned text.
type CLIHandler struct {
	services *service.Services
	out      io.Writer
	format   string
	printer  *message.Printer
	commands map[string]command
}

func NewCLIHandler(services *service.Services, out io.Writer, format string) *CLIHandler {
	h := &CLIHandler{
		services: services,
		out:      out,
		format:   format,
		printer:  message.NewPrinter(language.English),
	}
	h.commands = map[string]command{
		"inventory": h.Inventory,
		"locations": h.Locations,
		"products":  h.Products,
		"vendors":   h.Vendors,
		"transfers": h.Transfers,
		"audits":    h.Audits,
		"alerts":    h.Alerts,
		"chat":      h.Chat,
		"meetings":  h.Meetings,
		"dashboard": h.Dashboard,
		"report":    h.Report,
		"backup":    h.Backup,
	}
	return h
}

// Commands lists the top-level command names.
func (h *CLIHandler) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *CLIHandler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("command required, one of: %s", strings.Join(h.Commands(), ", "))
	}
	cmd, ok := h.commands[args[0]]
	if !ok {
		return usageError("unknown command %q, one of: %s", args[0], strings.Join(h.Commands(), ", "))
	}
	return cmd(ctx, args[1:])
}

// ExitCode classifies err the way the service reports it.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidBackup),
		errors.Is(err, service.ErrNoArchive):
		return ExitUsage
	case errors.Is(err, service.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrInsufficientStock):
		return ExitConflict
	default:
		return ExitInternal
	}
}

func usageError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrUsage)
}

// subcommand splits args into the action name and its remaining arguments.
func subcommand(args []string, actions ...string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, usageError("action required, one of: %s", strings.Join(actions, ", "))
	}
	for _, a := range actions {
		if a == args[0] {
			return args[0], args[1:], nil
		}
	}
	return "", nil, usageError("unknown action %q, one of: %s", args[0], strings.Join(actions, ", "))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args and returns the positional arguments and the set of
// flags given explicitly.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, map[string]bool, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError("%s: %v", fs.Name(), err)
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return fs.Args(), set, nil
}

func requireArgs(name string, args []string, n int) error {
	if len(args) < n {
		return usageError("%s needs %d argument(s)", name, n)
	}
	return nil
}

func (h *CLIHandler) emit(data any, headers []string, rows [][]string) error {
	if h.format == "json" {
		return writeJSON(h.out, data)
	}
	return writeTable(h.out, headers, rows)
}

func (h *CLIHandler) deleted(kind, id string, ok bool) error {
	if h.format == "json" {
		return writeJSON(h.out, map[string]any{"id": id, "deleted": ok})
	}
	if !ok {
		_, err := fmt.Fprintf(h.out, "%s %s not found, nothing deleted\n", kind, id)
		return err
	}
	_, err := fmt.Fprintf(h.out, "%s %s deleted\n", kind, id)
	return err
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
