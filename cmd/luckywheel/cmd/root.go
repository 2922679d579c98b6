// Package cmd implements the luckywheel CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (render, term).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"golang.org/x/mod/semver"

	"github.com/go-drift/luckywheel/pkg/canvas"
	"github.com/go-drift/luckywheel/pkg/errors"
	"github.com/go-drift/luckywheel/pkg/wheel"
)

// Version information set at build time.
var (
	Version   = "v0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "luckywheel",
	Short: "luckywheel - spin a prize wheel",
	Long: `luckywheel spins a prize wheel through its accelerate, cruise and
settle phases and lands it on a chosen segment. It can record the spin
as an animated GIF, PNG, click-track WAV or styled HTML page, or play
it interactively in the terminal.

Use "luckywheel <command> --help" for more information about a command.`,
	Usage: "luckywheel <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the arguments from os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("luckywheel version %s (built %s)\n", version(), BuildTime)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// version prefers the module version stamped by "go install" over the
// linker-set default.
func version() string {
	if bi, ok := debug.ReadBuildInfo(); ok && semver.IsValid(bi.Main.Version) {
		return bi.Main.Version
	}
	if semver.IsValid(Version) {
		return semver.Canonical(Version)
	}
	return Version
}

// setupLogging routes wheel, canvas and reported errors to out.
func setupLogging(out io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	wheel.SetLogger(logger)
	canvas.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
	return logger
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help           Show help for a command")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  luckywheel render --gif spin.gif          Record a spin that stops on prize 7")
	fmt.Println("  luckywheel render --prize -1 --wav a.wav  Record a no-prize spin's click track")
	fmt.Println("  luckywheel term                           Spin in the terminal")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
