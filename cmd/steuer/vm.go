package main

import (
	"fmt"

	"github.com/hbrokkoli/steuer/vm"
)

// selectVM resolves a --vm flag value (or config default) to a VM
// implementation. An empty name falls back to the default StackVM.
func selectVM(name string) (vm.VM, error) {
	switch name {
	case "", "stack":
		return vm.StackVM{}, nil
	case "null":
		return vm.NullVM{}, nil
	case "counting":
		return vm.CountingVM{}, nil
	default:
		return nil, fmt.Errorf("unknown vm %q: expected null, stack, or counting", name)
	}
}
