/*
Package domain contains the core domain models of the tracentm engine.

It defines the machine being traced, the configurations produced while exploring it,
and the results handed back to callers. This package is kept pure and free of I/O and
persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - Machine: an immutable non-deterministic Turing machine (states, alphabets, rules).
  - Configuration: a snapshot of tape, state and head inside the exploration tree.
  - Run: the outcome of one simulation, retaining the tree for path and statistics queries.
  - Report: a serializable summary of a Run, suitable for storage and transport.
*/
package domain
