// Package shell is the interactive caller layer on top of the namespace
// tree: it tokenizes command lines, validates argument counts, collects
// sentinel-terminated multi-line input and renders results and errors as
// user-facing text. The tree itself never prints; all presentation lives
// here.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/orcnighte/terminal-system/config"
	"github.com/orcnighte/terminal-system/internal/tree"
	"github.com/orcnighte/terminal-system/internal/util"
)

// Shell runs the read-eval loop against an injected reader and writer, so
// sessions are scriptable in tests without a terminal.
type Shell struct {
	tree *tree.Tree
	cfg  *config.Config
	in   *bufio.Scanner
	out  io.Writer
	log  util.Logger
	quit bool
}

// New creates a shell over the given tree. Each shell gets a session ID on
// its logger so interleaved sessions stay distinguishable in logs.
func New(t *tree.Tree, cfg *config.Config, in io.Reader, out io.Writer) *Shell {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	logger := util.GetLogger("shell").With().
		Str("session", uuid.New().String()).
		Logger()
	return &Shell{
		tree: t,
		cfg:  cfg,
		in:   bufio.NewScanner(in),
		out:  out,
		log:  logger,
	}
}

// Run starts the prompt loop. It returns when the user exits, input is
// exhausted, or reading fails.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, "Virtual File System Simulation. Type 'help' for commands.")
	for !s.quit {
		fmt.Fprintf(s.out, "(%s) $ ", s.tree.CurrentPath())
		if !s.in.Scan() {
			break
		}
		s.Exec(s.in.Text())
	}
	s.log.Debug().Msg("Session ended")
	return s.in.Err()
}

// Exec tokenizes and dispatches a single command line.
func (s *Shell) Exec(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	name, args := fields[0], fields[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(s.out, "Unknown command:", name)
		return
	}
	if len(args) < cmd.minArgs || (cmd.maxArgs >= 0 && len(args) > cmd.maxArgs) {
		fmt.Fprintln(s.out, "Usage:", cmd.usage)
		return
	}
	s.log.Debug().Str("cmd", name).Strs("args", args).Msg("Dispatching command")
	s.dispatch(cmd.kind, args)
}

// dispatch is the single exhaustive switch over the closed command set.
func (s *Shell) dispatch(kind cmdKind, args []string) {
	switch kind {
	case cmdLs:
		s.runLs()
	case cmdMkdir:
		s.runMkdir(args)
	case cmdTouch:
		s.runTouch(args)
	case cmdCd:
		s.runCd(args[0])
	case cmdRm:
		s.runRm(args[0])
	case cmdRename:
		s.runRename(args[0], args[1])
	case cmdCp:
		s.runCp(args[0], args[1])
	case cmdMv:
		s.runMv(args[0], args[1])
	case cmdNewFileText:
		s.runNewFileText(args[0])
	case cmdAppendText:
		s.runAppendText(args[0])
	case cmdEditLine:
		s.runEditLine(args)
	case cmdDeleteLine:
		s.runDeleteLine(args[0], args[1])
	case cmdCat:
		s.runCat(args[0])
	case cmdHelp:
		fmt.Fprintln(s.out, helpText)
	case cmdExit:
		s.quit = true
	}
}

func (s *Shell) runLs() {
	entries, err := s.tree.ListChildren(s.tree.Cursor())
	if err != nil {
		s.printErr(err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "Empty directory.")
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Kind == tree.KindDirectory {
			names = append(names, e.Name+"/")
		} else {
			names = append(names, e.Name)
		}
	}
	fmt.Fprintln(s.out, strings.Join(names, "\t"))
}

// targetDir resolves the optional leading path argument of mkdir/touch,
// falling back to the cursor when the command names no path.
func (s *Shell) targetDir(args []string) (tree.NodeID, string, bool) {
	if len(args) == 1 {
		return s.tree.Cursor(), args[0], true
	}
	dir, err := s.tree.Resolve(args[0])
	if err != nil {
		fmt.Fprintln(s.out, "Path not found or not a directory.")
		return tree.InvalidID, "", false
	}
	if entry, err := s.tree.Stat(dir); err != nil || entry.Kind != tree.KindDirectory {
		fmt.Fprintln(s.out, "Path not found or not a directory.")
		return tree.InvalidID, "", false
	}
	return dir, args[1], true
}

func (s *Shell) runMkdir(args []string) {
	dir, name, ok := s.targetDir(args)
	if !ok {
		return
	}
	if _, err := s.tree.Mkdir(dir, name); err != nil {
		s.printErr(err)
	}
}

func (s *Shell) runTouch(args []string) {
	dir, name, ok := s.targetDir(args)
	if !ok {
		return
	}
	if _, err := s.tree.Touch(dir, name); err != nil {
		if errors.Is(err, tree.ErrInvalidArgument) {
			fmt.Fprintf(s.out, "File name must end with %s\n", strings.Join(s.cfg.FileSuffixes, " or "))
			return
		}
		s.printErr(err)
		return
	}
	fmt.Fprintf(s.out, "File '%s' created.\n", name)
}

func (s *Shell) runCd(path string) {
	if err := s.tree.Cd(path); err != nil {
		fmt.Fprintln(s.out, "Path not found or not a directory.")
	}
}

func (s *Shell) runRm(path string) {
	if err := s.tree.Remove(path); err != nil {
		if errors.Is(err, tree.ErrRootProtected) {
			fmt.Fprintln(s.out, "Cannot remove root directory.")
			return
		}
		s.printErr(err)
	}
}

func (s *Shell) runRename(path, newName string) {
	if err := s.tree.Rename(path, newName); err != nil {
		if errors.Is(err, tree.ErrRootProtected) {
			fmt.Fprintln(s.out, "Cannot rename root directory.")
			return
		}
		s.printErr(err)
	}
}

func (s *Shell) runCp(src, dest string) {
	if _, err := s.tree.Copy(src, dest); err != nil {
		s.printErr(err)
	}
}

func (s *Shell) runMv(src, dest string) {
	if err := s.tree.Move(src, dest); err != nil {
		switch {
		case errors.Is(err, tree.ErrRootProtected):
			fmt.Fprintln(s.out, "Cannot move root directory.")
		case errors.Is(err, tree.ErrInvalidArgument):
			fmt.Fprintln(s.out, "Cannot move a directory into itself.")
		default:
			s.printErr(err)
		}
	}
}

// resolveFile resolves path and verifies it names a file, printing the
// original's message otherwise.
func (s *Shell) resolveFile(path string) (tree.NodeID, bool) {
	id, err := s.tree.Resolve(path)
	if err != nil {
		fmt.Fprintln(s.out, "File not found or not a file.")
		return tree.InvalidID, false
	}
	entry, err := s.tree.Stat(id)
	if err != nil || entry.Kind != tree.KindFile {
		fmt.Fprintln(s.out, "File not found or not a file.")
		return tree.InvalidID, false
	}
	return id, true
}

// captureLines reads input lines until the configured sentinel. The
// sentinel comparison trims surrounding whitespace; captured lines are kept
// verbatim.
func (s *Shell) captureLines() []string {
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == s.cfg.Sentinel {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func (s *Shell) runNewFileText(path string) {
	file, ok := s.resolveFile(path)
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "Enter new content for the file. Type '%s' to finish.\n", s.cfg.Sentinel)
	if err := s.tree.SetContent(file, s.captureLines()); err != nil {
		s.printErr(err)
	}
}

func (s *Shell) runAppendText(path string) {
	file, ok := s.resolveFile(path)
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "Enter text to append. Type '%s' to finish.\n", s.cfg.Sentinel)
	if err := s.tree.AppendLines(file, s.captureLines()); err != nil {
		s.printErr(err)
	}
}

func (s *Shell) runEditLine(args []string) {
	file, ok := s.resolveFile(args[0])
	if !ok {
		return
	}
	lineNumber, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintln(s.out, "Line number must be an integer.")
		return
	}
	newText := strings.Join(args[2:], " ")
	if err := s.tree.EditLine(file, lineNumber, newText); err != nil {
		fmt.Fprintln(s.out, "Invalid line number.")
	}
}

func (s *Shell) runDeleteLine(path, lineArg string) {
	file, ok := s.resolveFile(path)
	if !ok {
		return
	}
	lineNumber, err := strconv.Atoi(lineArg)
	if err != nil {
		fmt.Fprintln(s.out, "Line number must be an integer.")
		return
	}
	if err := s.tree.DeleteLine(file, lineNumber); err != nil {
		fmt.Fprintln(s.out, "Invalid line number.")
	}
}

func (s *Shell) runCat(path string) {
	file, ok := s.resolveFile(path)
	if !ok {
		return
	}
	lines, err := s.tree.ReadContent(file)
	if err != nil {
		s.printErr(err)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
}

// printErr maps core error kinds onto their user-facing messages.
func (s *Shell) printErr(err error) {
	s.log.Debug().Err(err).Msg("Command failed")
	switch {
	case errors.Is(err, tree.ErrDuplicateName):
		fmt.Fprintln(s.out, "A node with that name already exists.")
	case errors.Is(err, tree.ErrNotADirectory):
		fmt.Fprintln(s.out, "Path not found or not a directory.")
	case errors.Is(err, tree.ErrNotAFile):
		fmt.Fprintln(s.out, "File not found or not a file.")
	case errors.Is(err, tree.ErrRootProtected):
		fmt.Fprintln(s.out, "Cannot modify root directory.")
	case errors.Is(err, tree.ErrNotFound):
		fmt.Fprintln(s.out, "Path not found.")
	default:
		fmt.Fprintln(s.out, "Error:", err)
	}
}
