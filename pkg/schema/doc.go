/*
Package schema checks machine definitions for structural consistency before they are
handed to the engine.

The engine assumes a well-formed machine and never validates it; loaders call Validate
so that malformed descriptions fail fast with every problem reported at once.

	def := domain.Definition{...}
	if err := schema.Validate(def); err != nil {
		for _, e := range schema.ValidationErrors(err) {
			log.Println(e)
		}
	}
*/
package schema
