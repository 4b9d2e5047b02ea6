package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rosed"
	"github.com/spf13/cobra"

	"github.com/hbrokkoli/steuer/grammar"
	"github.com/hbrokkoli/steuer/spec"
	"github.com/hbrokkoli/steuer/vm"
)

var checkFlags = struct {
	output *string
	format *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check <grammar-path>",
		Short:   "Load and analyze a grammar without parsing any input",
		Example: `  steuer check grammar.steuer -o grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCheck,
	}
	checkFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	checkFlags.format = cmd.Flags().StringP("format", "f", "", "output format: json|bin|text (default from config, else json)")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := *checkFlags.format
	if format == "" {
		format = config.DefaultFormat
	}
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "bin" && format != "text" {
		return fmt.Errorf("invalid output format: %v", format)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read grammar file: %w", err)
	}

	data, err := grammar.Load(string(src), vm.NullVM{})
	if err != nil {
		return err
	}
	compiled, err := grammar.Compile(data)
	if err != nil {
		return err
	}
	snapshot, err := spec.FromCompiled(compiled)
	if err != nil {
		return err
	}

	var out []byte
	switch format {
	case "json":
		out, err = snapshot.ToJSON()
		if err != nil {
			return err
		}
		out = append(out, '\n')
	case "bin":
		out = snapshot.ToBinary()
	case "text":
		out = []byte(renderText(snapshot) + "\n")
	}

	if *checkFlags.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(*checkFlags.output, out, 0644)
}

// renderText summarizes a compiled grammar's rules as a fixed-width text
// table: one row per non-terminal, its alternative count, and the
// look-ahead symbols its director map claims.
func renderText(snapshot *spec.CompiledGrammar) string {
	data := [][]string{{"Rule", "Alts", "Director set"}}
	for _, r := range snapshot.Rules {
		lookaheads := ""
		for i, d := range r.Director {
			if i > 0 {
				lookaheads += " "
			}
			if d.Kind == "terminate" {
				lookaheads += "<eof>"
			} else {
				lookaheads += fmt.Sprintf("%q", d.Char)
			}
		}
		data = append(data, []string{r.Name, fmt.Sprintf("%d", len(r.Productions)), lookaheads})
	}

	opts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	return rosed.Edit("").InsertTableOpts(0, data, 100, opts).String()
}
