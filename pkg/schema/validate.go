package schema

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/aretw0/tracentm/pkg/domain"
)

// Validate checks that a definition is internally consistent.
// Returns an *AggregateError with all validation failures found.
func Validate(def domain.Definition) error {
	var errs []error
	fail := func(key, reason string, value any) {
		errs = append(errs, &ValidationError{Key: key, Reason: reason, Value: value})
	}

	if len(def.States) == 0 {
		fail("states", "at least one state is required", nil)
	}
	declared := func(state string) bool {
		return len(def.States) == 0 || slices.Contains(def.States, state)
	}

	for key, state := range map[string]string{"start": def.Start, "accept": def.Accept, "reject": def.Reject} {
		switch {
		case state == "":
			fail(key, "required", nil)
		case !declared(state):
			fail(key, "state is not declared", state)
		}
	}
	if def.Accept != "" && def.Accept == def.Reject {
		fail("reject", "must differ from the accept state", def.Reject)
	}

	for i, sym := range def.TapeAlphabet {
		if utf8.RuneCountInString(sym) != 1 {
			fail(fmt.Sprintf("tape_alphabet[%d]", i), "symbols must be a single character", sym)
		}
	}
	onTape := func(sym string) bool {
		return len(def.TapeAlphabet) == 0 || sym == domain.Blank || slices.Contains(def.TapeAlphabet, sym)
	}
	for i, sym := range def.InputAlphabet {
		key := fmt.Sprintf("input_alphabet[%d]", i)
		switch {
		case utf8.RuneCountInString(sym) != 1:
			fail(key, "symbols must be a single character", sym)
		case sym == domain.Blank:
			fail(key, "the blank symbol cannot be an input symbol", sym)
		case !onTape(sym):
			fail(key, "symbol is not in the tape alphabet", sym)
		}
	}

	for i, t := range def.Transitions {
		key := fmt.Sprintf("transitions[%d]", i)
		if !declared(t.From) || t.From == "" {
			fail(key+".from", "state is not declared", t.From)
		}
		if !declared(t.Next) || t.Next == "" {
			fail(key+".next", "state is not declared", t.Next)
		}
		for field, sym := range map[string]string{"read": t.Read, "write": t.Write} {
			switch {
			case utf8.RuneCountInString(sym) != 1:
				fail(key+"."+field, "symbols must be a single character", sym)
			case !onTape(sym):
				fail(key+"."+field, "symbol is not in the tape alphabet", sym)
			}
		}
		if t.Move != domain.MoveRight && t.Move != domain.MoveLeft {
			fail(key+".move", "direction must be R or L", t.Move)
		}
	}

	if len(errs) > 0 {
		sortErrors(errs)
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Map iteration above is unordered; keep reports stable.
func sortErrors(errs []error) {
	slices.SortStableFunc(errs, func(a, b error) int {
		ka, kb := a.(*ValidationError).Key, b.(*ValidationError).Key
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		}
		return 0
	})
}
