/*
Package ports defines the driven ports (interfaces) of the multiagent engine.

These interfaces decouple the routing core from external implementations, so
the same orchestrator can talk to different model providers, tools and
transcript archives.

# Key Interfaces

  - Gateway: the sole point of contact with a language model.
  - Node: the contract every graph node (supervisor, workers, validator) fulfils.
  - ToolRunner: a side-effect a worker may invoke inside its reasoning loop.
  - TranscriptStore: an optional audit sink for finished runs.
*/
package ports
