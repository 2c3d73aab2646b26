/*
Package service serves many machines behind one ports.Simulator.

It is the shared backend of the HTTP and MCP adapters: it resolves machines through a
ports.MachineLoader, bounds and sanitizes remote requests, runs the exploration engine
and optionally persists every Report to a ports.ReportStore.

	svc := service.New(loader,
		service.WithStore(redis.New("localhost:6379", "", 0)),
		service.WithDepthLimit(500),
	)
	rep, err := svc.Simulate(ctx, "a-plus", "aaaa", 10)
*/
package service
