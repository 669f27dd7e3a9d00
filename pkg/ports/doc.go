/*
Package ports defines the driven ports (interfaces) of the Tendril engine.

# Key Interfaces

  - StateStore: keeps live session state between turns (memory, Redis).
  - DistributedLocker: serializes turns of one session across replicas.
  - ActionExecutor: extension point for side-effects of answering nodes.
  - TurnProcessor: what transport adapters need from the engine.
*/
package ports
