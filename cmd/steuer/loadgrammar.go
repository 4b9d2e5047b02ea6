package main

import (
	"fmt"
	"os"

	"github.com/hbrokkoli/steuer/grammar"
	"github.com/hbrokkoli/steuer/spec"
	"github.com/hbrokkoli/steuer/vm"
)

// loadCompiled produces a runnable *grammar.Compiled either by running the
// full loader+set-analyzer over grammar text (the common path), or, when
// fromCache is set, by reading back a CompiledGrammar snapshot previously
// written by `steuer check -o` and reconstructing it directly — skipping
// C2/C3 entirely for grammars whose analysis was already paid for.
func loadCompiled(grammarPath, fromCache string, machine vm.VM) (*grammar.Compiled, error) {
	if fromCache == "" {
		src, err := os.ReadFile(grammarPath)
		if err != nil {
			return nil, fmt.Errorf("read grammar file: %w", err)
		}
		data, err := grammar.Load(string(src), machine)
		if err != nil {
			return nil, err
		}
		return grammar.Compile(data)
	}

	cached, err := os.ReadFile(fromCache)
	if err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}

	var snapshot *spec.CompiledGrammar
	if looksLikeJSON(cached) {
		snapshot, err = spec.FromJSON(cached)
	} else {
		snapshot, err = spec.FromBinary(cached)
	}
	if err != nil {
		return nil, fmt.Errorf("decode cache file: %w", err)
	}
	return snapshot.Reconstruct(machine)
}

func looksLikeJSON(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', '[':
			return true
		default:
			return false
		}
	}
	return false
}
