/*
Ggpi starts an interactive GDL query console.

It loads a ruleset from a file and lets the user query its primitives
directly, without standing up an HTTP server or a game controller. This
is a debugging and authoring tool: load a ruleset under development,
poke at its legal moves and terminal conditions, and step through a
match by hand.

Usage:

	ggpi [flags]

The flags are:

	-v, --version
		Give the current version of the player and then exit.

	-r, --ruleset FILE
		Load the GDL ruleset from FILE. Defaults to "ruleset.gdl" in the
		current working directory.

Once started, the console accepts the following commands:

	roles                 list the roles declared by the ruleset
	init                  return to the initial state and print it
	legal ROLE            list ROLE's legal actions in the current state
	goal ROLE             show ROLE's goal value in the current state
	terminal              report whether the current state is terminal
	step MOVE MOVE ...    apply a joint move (one action per role, in role
	                      order) and make the result the current state
	reset                 return to the initial state
	state                 print the current state's true facts
	quit                  exit the console
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"

	"github.com/roblaing/ggp-go-player/internal/gdl"
	"github.com/roblaing/ggp-go-player/internal/input"
	"github.com/roblaing/ggp-go-player/internal/sexpr"
	"github.com/roblaing/ggp-go-player/internal/term"
	"github.com/roblaing/ggp-go-player/internal/version"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the player and then exit.")
	flagRuleset = pflag.StringP("ruleset", "r", "ruleset.gdl", "Load the GDL ruleset from this file.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	data, err := os.ReadFile(*flagRuleset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	clauses, err := sexpr.ParseRuleset(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: parsing ruleset: %s\n", err.Error())
		os.Exit(1)
	}

	game := gdl.NewGame(clauses)

	console := &console{
		game:  game,
		state: game.Init(),
	}

	reader, err := input.NewInteractiveReader("ggpi> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(1)
	}
	defer reader.Close()

	console.run(reader, os.Stdout)
}

type console struct {
	game  *gdl.Game
	state term.State
}

func (c *console) run(reader *input.InteractiveCommandReader, out io.Writer) {
	for {
		line, err := reader.ReadCommand()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(out, "ERROR: %s\n", err.Error())
			}
			return
		}

		name, rest := splitFirst(line)
		if name == "" {
			continue
		}

		cmd := strings.ToLower(name)
		if cmd == "quit" {
			return
		}

		if err := c.dispatch(out, cmd, splitTopLevel(rest)); err != nil {
			fmt.Fprintf(out, "ERROR: %s\n", err.Error())
		}
	}
}

// splitFirst returns line's first whitespace-delimited word and the
// trimmed remainder, so a command's arguments can be tokenized
// separately from the command name itself.
func splitFirst(line string) (first, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// splitTopLevel splits s on whitespace that isn't nested inside
// parentheses, so a compound action like "(mark 1 1)" survives as a
// single argument instead of being shattered by a plain field split.
func splitTopLevel(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func (c *console) dispatch(out io.Writer, cmd string, args []string) error {
	switch cmd {
	case "roles":
		return c.cmdRoles(out)
	case "init":
		c.state = c.game.Init()
		return c.cmdState(out)
	case "reset":
		c.state = c.game.Init()
		fmt.Fprintln(out, "state reset to init")
		return nil
	case "state":
		return c.cmdState(out)
	case "legal":
		return c.cmdLegal(out, args)
	case "goal":
		return c.cmdGoal(out, args)
	case "terminal":
		return c.cmdTerminal(out)
	case "step":
		return c.cmdStep(out, args)
	default:
		return fmt.Errorf("unrecognized command %q", cmd)
	}
}

func (c *console) cmdRoles(out io.Writer) error {
	data := [][]string{{"Role"}}
	for _, r := range c.game.Roles() {
		data = append(data, []string{r})
	}
	tableOpts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	fmt.Fprintln(out, rosed.Edit("").InsertTableOpts(0, data, 80, tableOpts).String())
	return nil
}

func (c *console) cmdState(out io.Writer) error {
	data := [][]string{{"True Fact"}}
	for _, t := range c.state {
		data = append(data, []string{t.String()})
	}
	tableOpts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	fmt.Fprintln(out, rosed.Edit("").InsertTableOpts(0, data, 80, tableOpts).String())
	return nil
}

func (c *console) cmdLegal(out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: legal ROLE")
	}
	role := args[0]
	data := [][]string{{"Legal Action"}}
	for _, m := range c.game.Legal(c.state) {
		if m.Role == role {
			data = append(data, []string{m.Action.String()})
		}
	}
	tableOpts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	fmt.Fprintln(out, rosed.Edit("").InsertTableOpts(0, data, 80, tableOpts).String())
	return nil
}

func (c *console) cmdGoal(out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: goal ROLE")
	}
	fmt.Fprintln(out, c.game.Goal(c.state, args[0]))
	return nil
}

func (c *console) cmdTerminal(out io.Writer) error {
	fmt.Fprintln(out, c.game.Terminal(c.state))
	return nil
}

func (c *console) cmdStep(out io.Writer, args []string) error {
	roles := c.game.Roles()
	if len(args) != len(roles) {
		return fmt.Errorf("usage: step MOVE... (need %d moves, one per role in order %v)", len(roles), roles)
	}

	move := make(term.JointMove, len(args))
	for i, a := range args {
		t, err := sexpr.ParseTerm(a)
		if err != nil {
			return fmt.Errorf("parsing move %d: %w", i+1, err)
		}
		move[i] = t
	}

	c.state = c.game.Next(c.state, move)
	return c.cmdState(out)
}
