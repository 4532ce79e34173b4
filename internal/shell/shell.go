// Package shell implements the interactive csvnexus command loop.
//
// The shell owns one core.Dataset for the length of a session. Commands are
// thin wrappers: they collect arguments, re-prompting until input is valid,
// call into core, and render the result or a coded error message. Errors
// never end the session; only exit or end of input do.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/JonMunkholm/csvnexus/internal/core"
	"github.com/JonMunkholm/csvnexus/internal/delim"
	"github.com/JonMunkholm/csvnexus/internal/logging"
)

const intro = "Welcome to CSV-Nexus Shell - type help or ? for commands."

// Options configures a Shell.
type Options struct {
	Dir            string        // Working directory for all file access
	Dialect        delim.Dialect // Format for reading and writing
	Prompt         string        // Printed before each command
	FileExt        string        // Extension offered by add and required by export
	ForceOverwrite bool          // Export replaces existing files without asking
}

// Shell is an interactive session over a single dataset.
type Shell struct {
	opts Options
	in   *bufio.Reader
	out  io.Writer
	errc *color.Color
	data core.Dataset
}

var helpText = []string{
	"add [file]: add a file to merge into the current dataset",
	"view: show the current dataset",
	"columns: show the columns of the current dataset and their kinds",
	"sort [column]: sort the current dataset",
	"export [file]: export the current dataset",
	"list: list the files that can be added",
	"clear: discard the current dataset",
	"help: show this help",
	"exit: exit CSV-Nexus",
}

// New returns a shell reading commands from in and writing to out.
func New(opts Options, in io.Reader, out io.Writer) *Shell {
	if opts.FileExt == "" {
		opts.FileExt = ".csv"
	}
	return &Shell{
		opts: opts,
		in:   bufio.NewReader(in),
		out:  out,
		errc: color.New(color.FgRed, color.Bold),
	}
}

// Dataset returns the session's dataset.
func (s *Shell) Dataset() *core.Dataset {
	return &s.data
}

// Run reads and executes commands until exit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	ctx, _ = logging.NewSession(ctx)
	logger := logging.FromContext(ctx)
	logger.Info("session started", "dir", s.opts.Dir)

	fmt.Fprintln(s.out, intro)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := s.readLine(s.opts.Prompt)
		if err == io.EOF {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		exit, err := s.Execute(ctx, line)
		if err == io.EOF {
			fmt.Fprintln(s.out)
			break
		}
		if err != nil {
			s.printError(ctx, err)
		}
		if exit {
			break
		}
	}

	logger.Info("session ended", "rows", s.data.Len())
	return nil
}

// Execute runs a single command line. It reports whether the session
// should end. io.EOF from a prompt inside a command is returned as is.
func (s *Shell) Execute(ctx context.Context, line string) (bool, error) {
	name, arg := splitCommand(line)
	if name == "" {
		return false, nil
	}
	if name == "?" {
		name = "help"
	}
	if name == "exit" {
		return true, nil
	}

	logging.WithFields(ctx, "command", name).Debug("command", "arg", arg)

	switch name {
	case "add":
		return false, s.cmdAdd(ctx, arg)
	case "view":
		return false, s.cmdView()
	case "sort":
		return false, s.cmdSort(ctx, arg)
	case "export":
		return false, s.cmdExport(ctx, arg)
	case "columns":
		return false, s.cmdColumns()
	case "list":
		return false, s.cmdList()
	case "clear":
		s.cmdClear(ctx)
		return false, nil
	case "help":
		s.cmdHelp()
		return false, nil
	}

	fmt.Fprintf(s.out, "*** Unknown syntax: %s\n", line)
	return false, nil
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	return name, strings.TrimSpace(arg)
}

func (s *Shell) printError(ctx context.Context, err error) {
	s.errc.Fprintf(s.out, "Error: %s\n", FormatUserError(err))
	fmt.Fprintf(s.out, "  %v\n", err)

	logger := logging.FromContext(ctx)
	if IsUserFacing(err) {
		logger.Info("command failed", "error", err)
	} else {
		logger.Error("command failed", "error", err)
	}
}

// candidateFiles lists regular files in the working directory ending with
// the configured extension, sorted by name.
func (s *Shell) candidateFiles() ([]string, error) {
	entries, err := os.ReadDir(s.opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", s.opts.Dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if filepath.Ext(entry.Name()) != s.opts.FileExt {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (s *Shell) cmdAdd(ctx context.Context, arg string) error {
	file := arg
	if file == "" {
		files, err := s.candidateFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("add: %s: %w", s.opts.Dir, ErrNoFiles)
		}
		s.printChoices(files)
		idx, err := s.chooseIndex("Number of the file to add: ", len(files))
		if err != nil {
			return err
		}
		file = files[idx]
	}

	n, err := s.data.Add(file, s.opts.Dir, s.opts.Dialect)
	if err != nil {
		return err
	}

	logging.WithFields(ctx, "file", file).Info("file merged", "rows", n, "total", s.data.Len())
	fmt.Fprintf(s.out, "Added %d rows from %s (%d total).\n", n, file, s.data.Len())
	return nil
}

func (s *Shell) cmdView() error {
	if s.data.Empty() {
		return nil
	}
	return render(s.out, s.data.Header(), s.data.Rows())
}

func (s *Shell) cmdColumns() error {
	if s.data.Empty() {
		return nil
	}
	return renderColumns(s.out, s.data.Header(), s.data.Rows()[0])
}

func (s *Shell) cmdSort(ctx context.Context, arg string) error {
	header := s.data.Header()

	column := arg
	if column != "" {
		if header.Index(column) < 0 {
			return fmt.Errorf("sort by %q: %w", column, core.ErrUnknownColumn)
		}
	} else {
		if s.data.Empty() {
			return nil
		}
		s.printChoices(header)
		idx, err := s.chooseIndex("Number of the column to sort: ", len(header))
		if err != nil {
			return err
		}
		column = header[idx]
	}

	reverse, err := s.askYesNo("reverse the sort ?(y/n): ")
	if err != nil {
		return err
	}

	if err := s.data.Sort(column, reverse); err != nil {
		return err
	}

	logging.WithFields(ctx, "column", column).Info("dataset sorted", "reverse", reverse)
	return nil
}

func (s *Shell) cmdExport(ctx context.Context, arg string) error {
	if s.data.Empty() {
		fmt.Fprintln(s.out, "Nothing to export.")
		return nil
	}

	name := arg
	if name == "" {
		line, err := s.readLine("Name of the file to export: ")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(line)
	}
	if !strings.HasSuffix(name, s.opts.FileExt) {
		return fmt.Errorf("export %q: want %s: %w", name, s.opts.FileExt, ErrBadExtension)
	}

	force := s.opts.ForceOverwrite
	err := s.data.Export(name, s.opts.Dir, s.opts.Dialect, force)
	if errors.Is(err, core.ErrAlreadyExists) {
		overwrite, askErr := s.askYesNo(fmt.Sprintf("%s exists, overwrite ?(y/n): ", name))
		if askErr != nil {
			return askErr
		}
		if !overwrite {
			return err
		}
		force = true
		err = s.data.Export(name, s.opts.Dir, s.opts.Dialect, force)
	}
	if err != nil {
		return err
	}

	logging.WithFields(ctx, "file", name).Info("dataset exported", "rows", s.data.Len(), "overwrite", force)
	fmt.Fprintf(s.out, "Exported %d rows to %s.\n", s.data.Len(), name)
	return nil
}

func (s *Shell) cmdList() error {
	files, err := s.candidateFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("list: %s: %w", s.opts.Dir, ErrNoFiles)
	}
	s.printChoices(files)
	return nil
}

func (s *Shell) cmdClear(ctx context.Context) {
	n := s.data.Len()
	s.data.Reset()
	logging.FromContext(ctx).Info("dataset cleared", "rows", n)
	fmt.Fprintf(s.out, "Cleared %d rows.\n", n)
}

func (s *Shell) cmdHelp() {
	fmt.Fprintln(s.out, "Commands:")
	for _, line := range helpText {
		fmt.Fprintf(s.out, "  %s\n", line)
	}
}
