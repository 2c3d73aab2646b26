/*
Package dsl provides a fluent Go builder for Turing machine definitions.

It is an alternative to CSV or YAML files when machines are generated in code or
written inline in tests.

Example usage:

	b := dsl.New("ends-in-b").
		States("q0", "q1", "qacc", "qrej").
		Alphabet("a", "b").
		Start("q0").Accept("qacc").Reject("qrej")

	b.From("q0").On("a").Right("q0")
	b.From("q0").On("b").Right("q0").Or().Right("q1")
	b.From("q1").On("_").Right("qacc")

	loader, err := b.Loader()
	// ... pass loader to tracentm.New("", tracentm.WithLoader(loader), tracentm.WithMachineID("ends-in-b"))
*/
package dsl
