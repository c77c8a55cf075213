/*
Package multiagent routes a single task through a small team of language-model
agents: a Supervisor that picks a worker, three workers (Enhancer, Researcher,
Coder) and a Validator that either accepts the answer or sends the task back.

# Concept

Every run shares one append-only conversation log. Index 0 holds the user's
request; each node reads the log, appends one message and names its
successor. The edges are fixed:

	start -> supervisor
	supervisor -> enhancer | researcher | coder
	enhancer -> supervisor
	researcher | coder -> validator
	validator -> supervisor | end

Routing decisions are closed sets enforced at the gateway boundary, so a
model can never send control to a node that does not exist. A run stops when
the Validator accepts an answer, when any node fails, or when the Supervisor
has been visited MaxCycles times.

# Usage

	gw, err := langchain.New(langchain.Config{Provider: "groq", APIKey: key})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := multiagent.New(gw,
		multiagent.WithSearchTool(tavily.New(tavily.Config{APIKey: tavilyKey})),
		multiagent.WithCodeTool(process.NewRunner(interpreters)),
	)
	if err != nil {
		log.Fatal(err)
	}

	transcript, err := eng.Run(ctx, "How many A's are in AVYGABAAHKJHDAAAAUHBU?")
	if err != nil {
		log.Fatal(err)
	}
	answer, _ := transcript.Answer()
	fmt.Println(answer.Content)

# Architecture

  - pkg/domain: messages, the conversation log, routing enums and errors.
  - pkg/ports: the Gateway, Node, ToolRunner and TranscriptStore interfaces.
  - pkg/agents: the five nodes.
  - pkg/adapters: gateways (langchaingo, Gemini), tools (Tavily, local
    interpreters), transcript stores and the HTTP and MCP surfaces.
*/
package multiagent
