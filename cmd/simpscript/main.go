// Command simpscript is the file-running and REPL driver over the
// simpscript core. It is a thin external collaborator (spec §1): the core
// never touches a terminal, a file, or a flag directly.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/oarkflow/log"
	"github.com/peterh/liner"

	simpscript "github.com/the-shashwat-singh/SimpScript"
)

const historyFile = ".simpscript_history"

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	traceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// cli is the top-level flag grammar (spec §6 CLI surface): a script path
// plus --debug/--trace; an empty path enters the REPL.
type cli struct {
	Script string `arg:"" optional:"" help:"Path to a .sims script to run. Omit to start the REPL." type:"existingfile"`
	Debug  bool   `help:"Enable debug-level structured logging."`
	Trace  bool   `help:"Print the line:column of each top-level statement before it evaluates."`
}

func main() {
	var c cli
	kong.Parse(&c,
		kong.Name("simpscript"),
		kong.Description("Run or interactively evaluate SimpScript source."),
		kong.UsageOnError(),
	)

	logger := &log.DefaultLogger

	var err error
	if c.Script == "" {
		err = runRepl(logger, c.Debug, c.Trace)
	} else {
		err = runFile(logger, c.Script, c.Debug, c.Trace)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// stdIO adapts the process's stdin/stdout to simpscript's LineInput/
// LineOutput collaborators (spec §1).
type stdIO struct {
	scanner *bufio.Scanner
}

func newStdIO() *stdIO {
	return &stdIO{scanner: bufio.NewScanner(os.Stdin)}
}

func (s *stdIO) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

func (s *stdIO) Write(out string) { fmt.Print(out) }

func runFile(logger *log.Logger, path string, debug, trace bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if debug {
		logger.Debug().Str("path", path).Msg("running script")
	}

	lineIO := newStdIO()
	ip := simpscript.NewInterpreter(lineIO, lineIO)
	if trace {
		ip.SetTrace(func(n simpscript.Node) {
			line, col := n.Pos()
			fmt.Fprintln(os.Stderr, traceStyle.Render(fmt.Sprintf("trace %d:%d", line, col)))
		})
	}

	if _, err := ip.Run(string(src)); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("script failed")
		return err
	}
	return nil
}

// replIO separates the ephemeral per-line ask() reader (driven by liner)
// from the persistent show/shownl writer (stdout), while both feed the
// same single interpreter and its one persistent global environment, so
// variables and function definitions survive across REPL lines.
type replIO struct {
	ln *liner.State
}

func (r *replIO) ReadLine() (string, error) {
	line, err := r.ln.Prompt("| ")
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	return line, err
}

func (r *replIO) Write(out string) { fmt.Print(out) }

func runRepl(logger *log.Logger, debug, trace bool) error {
	fmt.Println(promptStyle.Render("SimpScript REPL") + " -- Ctrl+D to exit")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sigc:
			ln.Close()
			os.Exit(130)
		case <-ctx.Done():
		}
	}()

	if debug {
		logger.Debug().Str("history", histPath).Msg("starting REPL")
	}

	lineIO := &replIO{ln: ln}
	ip := simpscript.NewInterpreter(lineIO, lineIO)
	if trace {
		ip.SetTrace(func(n simpscript.Node) {
			line, col := n.Pos()
			fmt.Fprintln(os.Stderr, traceStyle.Render(fmt.Sprintf("trace %d:%d", line, col)))
		})
	}

	for {
		line, err := ln.Prompt(promptStyle.Render("simp> "))
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if _, runErr := ip.Run(line); runErr != nil {
			logger.Error().Err(runErr).Msg("evaluation failed")
			fmt.Fprintln(os.Stderr, errorStyle.Render(runErr.Error()))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
