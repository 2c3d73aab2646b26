/*
Package tracentm simulates non-deterministic Turing machines.

A machine is explored breadth-first: every configuration of a level is expanded by
every applicable rule before the next level starts, so the first accepting
configuration found is the shallowest one. Exploration stops at the first accept, when
every branch has died, or when the caller's depth bound is exhausted.

# Usage

	eng, err := tracentm.New("./machines/a-plus.csv")
	if err != nil {
		log.Fatal(err)
	}

	run := eng.Simulate(context.Background(), "aaaa", tracentm.DefaultMaxDepth)
	fmt.Println(run.Verdict, run.Steps, run.TotalConfigurations)

Machines are read from CSV, YAML or JSON files by default. Any ports.MachineLoader
(for example the Loam or in-memory adapters) can be injected with WithLoader.

The Runner prints the summary used by the CLI:

	r := tracentm.NewRunner(os.Stdout)
	_, _ = r.Run(ctx, eng, "aaaa", 10)
*/
package tracentm
