// Package script parses edit scripts: line based command files that drive
// the section controllers without the terminal UI.
//
//	# comments and blank lines are ignored
//	set hardware.transport tcp
//	set hardware.tcp_host "10.0.0.7"
//	add ntpclient
//	set ntpclient.servers.1.address time.cloudflare.com
//	remove ntpclient 0
//	preset ntpclient nict
//	pick 35.68 139.76
//
// Lines are split with POSIX shell quoting rules.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/anyshake/prisma/internal/errors"
)

// Op names a script command.
type Op string

const (
	OpSet    Op = "set"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpPreset Op = "preset"
	OpPick   Op = "pick"
)

// arity is the number of arguments after the op.
var arity = map[Op]int{
	OpSet:    2,
	OpAdd:    1,
	OpRemove: 2,
	OpPreset: 2,
	OpPick:   2,
}

// Command is one parsed script line.
type Command struct {
	Op      Op
	Section string
	Field   string
	Args    []string
	Line    int
}

// String renders the command back in script syntax.
func (c Command) String() string {
	words := []string{string(c.Op)}
	switch c.Op {
	case OpSet:
		words = append(words, c.Section+"."+c.Field)
	case OpPick:
	default:
		words = append(words, c.Section)
	}
	return shellquote.Join(append(words, c.Args...)...)
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cmd, err := ParseLine(text)
		if err != nil {
			return nil, errors.ScriptError(fmt.Sprintf("line %d", line), err)
		}
		cmd.Line = line
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.ScriptError("failed to read script", err)
	}
	return cmds, nil
}

// ParseLine parses a single command.
func ParseLine(text string) (Command, error) {
	words, err := shellquote.Split(text)
	if err != nil {
		return Command{}, err
	}
	if len(words) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	op := Op(words[0])
	n, ok := arity[op]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", words[0])
	}
	args := words[1:]
	if len(args) != n {
		return Command{}, fmt.Errorf("%s expects %d arguments, got %d", op, n, len(args))
	}

	switch op {
	case OpSet:
		sec, fld, err := splitPath(args[0])
		if err != nil {
			return Command{}, err
		}
		return Command{Op: op, Section: sec, Field: fld, Args: args[1:]}, nil
	case OpPick:
		return Command{Op: op, Section: "location", Args: args}, nil
	default:
		return Command{Op: op, Section: args[0], Args: args[1:]}, nil
	}
}

// ParseAssignment parses the --set form "section.field=value".
func ParseAssignment(s string) (Command, error) {
	path, value, ok := strings.Cut(s, "=")
	if !ok {
		return Command{}, errors.ScriptError(fmt.Sprintf("invalid assignment %q", s), fmt.Errorf("expected section.field=value"))
	}
	sec, fld, err := splitPath(strings.TrimSpace(path))
	if err != nil {
		return Command{}, errors.ScriptError(fmt.Sprintf("invalid assignment %q", s), err)
	}
	return Command{Op: OpSet, Section: sec, Field: fld, Args: []string{value}}, nil
}

// splitPath splits "section.field". Fields may contain further dots, as in
// ntpclient.servers.0.address.
func splitPath(path string) (string, string, error) {
	sec, fld, ok := strings.Cut(path, ".")
	if !ok || sec == "" || fld == "" {
		return "", "", fmt.Errorf("expected section.field, got %q", path)
	}
	return sec, fld, nil
}
