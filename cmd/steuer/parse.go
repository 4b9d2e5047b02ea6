package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbrokkoli/steuer/parse"
	"github.com/hbrokkoli/steuer/support/tree"
	"github.com/hbrokkoli/steuer/vm"
)

var parseFlags = struct {
	vmName    *string
	showTree  *bool
	onlyCheck *bool
	fromCache *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar-path> [script-path]",
		Short:   "Parse an input script against a grammar",
		Example: `  steuer parse grammar.steuer script.txt`,
		Args:    cobra.RangeArgs(1, 2),
		RunE:    runParse,
	}
	parseFlags.vmName = cmd.Flags().String("vm", "", "virtual machine: null|stack|counting (default from config, else stack)")
	parseFlags.showTree = cmd.Flags().Bool("tree", false, "print the resulting parse tree")
	parseFlags.onlyCheck = cmd.Flags().Bool("only-check", false, "load and analyze the grammar, then parse, but run no semantic actions")
	parseFlags.fromCache = cmd.Flags().String("from-cache", "", "reconstruct the compiled grammar from a `steuer check -o` snapshot instead of re-analyzing grammar-path")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	vmName := *parseFlags.vmName
	if vmName == "" {
		vmName = config.DefaultVM
	}
	machine, err := selectVM(vmName)
	if err != nil {
		return err
	}
	if *parseFlags.onlyCheck {
		machine = vm.NullVM{}
	}

	compiled, err := loadCompiled(args[0], *parseFlags.fromCache, machine)
	if err != nil {
		return err
	}

	var scriptSrc []byte
	if len(args) > 1 {
		scriptSrc, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read script file: %w", err)
		}
	} else {
		scriptSrc, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	p := parse.New(compiled, machine)
	state := machine.NewState()
	t, err := p.Parse(string(scriptSrc), state)
	if err != nil {
		return err
	}

	if *parseFlags.showTree {
		// A fresh Tree's first node is always id 0: Parse creates the root
		// via the tree's first AddNode call before anything else runs.
		if err := tree.Print(os.Stdout, t, tree.NodeID(0)); err != nil {
			return err
		}
	}

	if cs, ok := state.(*vm.CountingState); ok {
		fmt.Fprintf(os.Stdout, "actions: %d\n", cs.Count)
	}
	return nil
}
