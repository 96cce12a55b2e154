// Command tyquery is a small demonstration CLI over the type-inference
// core: it runs a handful of hand-built scenario trees through the
// Inference Walker and prints the simplified principal type at each
// binding, plus an interactive REPL for poking at the same scenarios.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/uros-5/tinymist/internal/check"
	"github.com/uros-5/tinymist/internal/syntax"
	"github.com/uros-5/tinymist/internal/ty"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:   "tyquery",
		Short: "Inspect the type-inference core's output on demo scenarios",
	}
	root.AddCommand(newTypecheckCmd())
	root.AddCommand(newHoverCmd())
	root.AddCommand(newSignaturesCmd())
	root.AddCommand(newReplCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:"), err)
		os.Exit(1)
	}
}

func newTypecheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "typecheck <scenario>",
		Short: "Type-check a named demo scenario and print its variable table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return typecheckAndPrint(cmd.OutOrStdout(), args[0])
		},
	}
}

func typecheckAndPrint(out io.Writer, scenario string) error {
	root, tbl, err := buildScenario(scenario)
	if err != nil {
		return err
	}
	sigs := newDemoSignatures()
	globals := newDemoGlobals()
	info, ok := check.TypeCheck("<demo>", root, tbl, demoEval{}, globals, sigs)
	if !ok {
		return fmt.Errorf("type_check returned no info")
	}
	fmt.Fprintf(out, "%s %s\n", bold("scenario:"), scenario)
	for id, v := range info.Vars() {
		principal := info.Simplify(v.Ref(), true)
		fmt.Fprintf(out, "  %s %s (id %d) : %s\n", green("var"), v.Name(), id, principal.String())
	}
	return nil
}

func newHoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hover <scenario> <column>",
		Short: "Print the type recorded at a 1-based line-1 column in a demo scenario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("column must be an integer: %w", err)
			}
			return hoverAndPrint(cmd.OutOrStdout(), args[0], col)
		},
	}
}

// hoverAndPrint implements the CLI surface for TypeCheckInfo.At (spec
// §6, "what type was inferred at span S"): it scans the span->type
// mapping for entries starting at the queried column, innermost (i.e.
// shortest) span first, the way an editor's hover request would resolve
// the most specific span under the cursor.
func hoverAndPrint(out io.Writer, scenario string, col int) error {
	root, tbl, err := buildScenario(scenario)
	if err != nil {
		return err
	}
	sigs := newDemoSignatures()
	globals := newDemoGlobals()
	info, ok := check.TypeCheck("<demo>", root, tbl, demoEval{}, globals, sigs)
	if !ok {
		return fmt.Errorf("type_check returned no info")
	}

	var hits []syntax.Span
	for span := range info.Mapping() {
		if span.Start.Line == 1 && span.Start.Column == col {
			hits = append(hits, span)
		}
	}
	if len(hits) == 0 {
		fmt.Fprintln(out, yellow("no type recorded at that position"))
		return nil
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].End.Column < hits[j].End.Column })

	mapping := info.Mapping()
	for _, span := range hits {
		t := mapping[span]
		fmt.Fprintf(out, "  %s %s : %s\n", cyan("at"), span.String(), info.Simplify(t, true).String())
	}
	return nil
}

func newSignaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signatures <scenario> <var-name>",
		Short: "Print the callable signatures extracted for a bound variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSignatures(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func printSignatures(out io.Writer, scenario, varName string) error {
	root, tbl, err := buildScenario(scenario)
	if err != nil {
		return err
	}
	sigs := newDemoSignatures()
	globals := newDemoGlobals()
	info, ok := check.TypeCheck("<demo>", root, tbl, demoEval{}, globals, sigs)
	if !ok {
		return fmt.Errorf("type_check returned no info")
	}
	for _, v := range info.Vars() {
		if v.Name() != varName {
			continue
		}
		funcs := ty.Signatures(v.Ref(), info, info.Simplify, true)
		if len(funcs) == 0 {
			fmt.Fprintln(out, yellow("no signatures found"))
			return nil
		}
		for _, f := range funcs {
			fmt.Fprintf(out, "  %s\n", f.String())
		}
		return nil
	}
	return fmt.Errorf("no variable named %q in scenario %q", varName, scenario)
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively inspect demo scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			startRepl(os.Stdout)
			return nil
		},
	}
}

func startRepl(out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)
	line.SetCompleter(func(s string) (c []string) {
		for _, cmd := range []string{":help", ":quit", "literal", "closure", "recursive", "conditional"} {
			if strings.HasPrefix(cmd, s) {
				c = append(c, cmd)
			}
		}
		return
	})

	fmt.Fprintln(out, bold("tyquery"), dim("- type a scenario name (literal, closure, recursive, conditional), :help, or :quit"))

	for {
		input, err := line.Prompt("tyquery> ")
		if err == io.EOF {
			fmt.Fprintln(out, green("bye"))
			return
		}
		if err != nil {
			fmt.Fprintln(out, red("error:"), err)
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		switch input {
		case ":quit", ":q":
			return
		case ":help", ":h":
			fmt.Fprintln(out, dim("scenarios: literal, closure, recursive, conditional"))
		default:
			if err := typecheckAndPrint(out, input); err != nil {
				fmt.Fprintln(out, red("error:"), err)
			}
		}
	}
}
