package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tracentm/internal/validator"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/aretw0/tracentm/pkg/schema"
)

// ValidateAll compiles every machine the loader knows and prints one line per problem.
// Lint warnings are printed under valid machines but do not fail validation.
// It returns an error when at least one machine is invalid.
func ValidateAll(loader ports.MachineLoader, out io.Writer) error {
	ids, err := loader.ListMachines()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("no machines found")
	}

	failed := 0
	for _, id := range ids {
		m, err := loader.GetMachine(id)
		if err == nil {
			fmt.Fprintf(out, "ok   %s\n", id)
			for _, w := range validator.Lint(m) {
				fmt.Fprintf(out, "     warn: %s\n", w)
			}
			continue
		}
		failed++

		details := schema.ValidationErrors(err)
		if len(details) == 0 {
			fmt.Fprintf(out, "FAIL %s: %v\n", id, err)
			continue
		}
		fmt.Fprintf(out, "FAIL %s\n", id)
		for _, d := range details {
			fmt.Fprintf(out, "     - %v\n", d)
		}
	}

	if failed > 0 {
		return errors.New(plural(failed, "invalid machine"))
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
