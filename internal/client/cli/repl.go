package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUsage tells the REPL to print the command's usage line.
var errUsage = errors.New("usage")

// command is one REPL verb.
type command struct {
	name  string
	usage string
	// public commands are offered before login.
	public bool
	run    func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
}

// runREPL starts a simple read–eval–print loop for the TABZ CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to the matching command. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by commands are printed in a user-facing form and never
// end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	cmds := a.commands()
	index := make(map[string]command, len(cmds))
	for _, c := range cmds {
		index[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("tabz %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(cmds, a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := index[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}

		if err := c.run(ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", c.usage)
				continue
			}
			printlnFn("Error:", describeError(err))
		}
	}
}

func helpText(cmds []command, loggedIn bool) string {
	names := make([]string, 0, len(cmds)+2)
	for _, c := range cmds {
		if loggedIn || c.public {
			names = append(names, c.name)
		}
	}
	names = append(names, "help", "exit")
	return "Available commands: " + strings.Join(names, ", ")
}
