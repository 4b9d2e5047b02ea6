package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/hbrokkoli/steuer/parse"
	"github.com/hbrokkoli/steuer/support/tree"
	"github.com/hbrokkoli/steuer/vm"
)

var replFlags = struct {
	vmName    *string
	fromCache *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar-path>",
		Short:   "Interactively parse lines of input against a grammar",
		Example: `  steuer repl grammar.steuer`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRepl,
	}
	replFlags.vmName = cmd.Flags().String("vm", "", "virtual machine: null|stack|counting (default from config, else stack)")
	replFlags.fromCache = cmd.Flags().String("from-cache", "", "reconstruct the compiled grammar from a `steuer check -o` snapshot instead of re-analyzing grammar-path")
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	vmName := *replFlags.vmName
	if vmName == "" {
		vmName = config.DefaultVM
	}
	machine, err := selectVM(vmName)
	if err != nil {
		return err
	}

	compiled, err := loadCompiled(args[0], *replFlags.fromCache, machine)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "steuer> "})
	if err != nil {
		return fmt.Errorf("create readline: %w", err)
	}
	defer rl.Close()

	// Each line gets a fresh State; the compiled grammar and its director
	// maps are read-only and shared across every line in the session.
	p := parse.New(compiled, machine)
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		state := machine.NewState()
		t, err := p.Parse(line, state)
		if err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
			continue
		}

		if err := tree.Print(os.Stdout, t, tree.NodeID(0)); err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
			continue
		}
		if cs, ok := state.(*vm.CountingState); ok {
			fmt.Fprintf(os.Stdout, "actions: %d\n", cs.Count)
		}
	}
}
