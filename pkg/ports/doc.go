/*
Package ports defines the driven ports (interfaces) for the tracentm engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various machine sources and report backends.

# Key Interfaces

  - MachineLoader: Responsible for loading machine definitions (e.g., from files, Loam or Memory).
  - ReportStore: Responsible for persisting and loading simulation reports.
  - Simulator: The multi-machine service consumed by the HTTP and MCP adapters.
*/
package ports
