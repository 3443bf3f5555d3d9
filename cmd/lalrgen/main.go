/*
Lalrgen builds an LALR(1) action/goto table from a TOML grammar source and
either dumps the table or drives an interactive parse session against it.

Usage:

	lalrgen [flags]

The flags are:

	-v, --version
		Give the current version of lalrgen and then exit.

	-g, --grammar FILE
		Load the grammar source from FILE. Defaults to "grammar.toml" in the
		current working directory.

	-u, --dump
		Print the generated action/goto table and exit without starting an
		interactive session.

	-t, --trace
		Print the parser's internal state-stack trace alongside each step
		during an interactive session.

	-d, --direct
		Force reading input lines directly from stdin instead of going
		through GNU readline.

Once a session has started, each line of input is split on whitespace into a
sequence of terminal names and fed to a fresh Parser, one token at a time,
printing every shift/reduce/accept step. An unrecognized terminal name or a
line the grammar rejects prints the error and returns to the prompt. Type
"QUIT" to exit.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dekarrin/lalrgen/internal/grammarfile"
	"github.com/dekarrin/lalrgen/internal/lalr/generator"
	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
	"github.com/dekarrin/lalrgen/internal/lalr/parser"
	"github.com/dekarrin/lalrgen/internal/replio"
	"github.com/dekarrin/lalrgen/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitGrammarError indicates the grammar source failed to load or
	// generate a table (malformed input or an LALR conflict).
	ExitGrammarError

	// ExitSessionError indicates an unsuccessful interactive session, e.g.
	// readline could not be initialized.
	ExitSessionError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	grammarFile *string = pflag.StringP("grammar", "g", "grammar.toml", "The TOML grammar source to load")
	flagDump    *bool   = pflag.BoolP("dump", "u", false, "Print the generated table and exit")
	flagTrace   *bool   = pflag.BoolP("trace", "t", false, "Print the parser's state-stack trace during an interactive session")
	forceDirect *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occured: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	g, err := grammarfile.Load(*grammarFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	res, err := generator.Generate(g)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGrammarError
		return
	}

	if *flagDump {
		fmt.Println(res.Table.Dump(g))
		return
	}

	termByName := make(map[string]int, g.NumTerminals())
	for i := 0; i < g.NumTerminals(); i++ {
		termByName[g.TerminalName(i)] = i
	}

	reader, err := newReader(*forceDirect)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
	defer reader.Close()

	runSession(reader, res, g, termByName)
}

// newReader picks the interactive readline-backed Reader, unless forceDirect
// says to read stdin lines directly instead.
func newReader(forceDirect bool) (replio.Reader, error) {
	if forceDirect {
		return replio.NewDirectReader(os.Stdin), nil
	}
	return replio.NewInteractiveReader("lalrgen> ")
}

func runSession(reader replio.Reader, res *generator.Result, g grammar.Grammar, termByName map[string]int) {
	for {
		line, err := reader.ReadLine()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "QUIT") {
			return
		}

		feedLine(line, res, g, termByName)
	}
}

func feedLine(line string, res *generator.Result, g grammar.Grammar, termByName map[string]int) {
	fields := strings.Fields(line)
	input := make([]int, len(fields))
	for i, f := range fields {
		idx, ok := termByName[f]
		if !ok {
			fmt.Printf("unrecognized terminal %q\n", f)
			return
		}
		input[i] = idx
	}

	p := parser.Init(res.Table, g)
	if *flagTrace {
		p.RegisterTraceListener(func(s string) { fmt.Println("  " + s) })
	}

	pos := 0
	next := func() int {
		if pos >= len(input) {
			return lookahead.Eof
		}
		return lookahead.Of(input[pos])
	}

	for {
		step, err := p.Feed(next())
		if err != nil {
			fmt.Printf("reject: %s\n", err.Error())
			return
		}

		fmt.Printf("%s\n", step.String())
		if step.Kind == parser.Accept {
			return
		}
		if step.Kind == parser.Shift {
			pos++
		}
	}
}
