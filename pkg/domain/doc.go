/*
Package domain contains the core models of the multiagent routing engine.

It defines the conversation log shared by every node of a run, the closed
routing vocabularies of the Supervisor and the Validator, the static graph
topology, and the errors the engine surfaces. This package is kept pure and
free of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Message: an immutable, author-tagged entry of the conversation log.
  - Conversation: the append-only log threaded through every node of a run.
  - SupervisorRoute / Verdict: the closed decision sets of the two deciders.
  - Graph: the declared nodes and edges the orchestrator is allowed to follow.
  - Transcript: the observable output of a finished (or halted) run.
*/
package domain
