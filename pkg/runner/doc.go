/*
Package runner drives the engine from a terminal or a pipe.

It reads requests through an IOHandler, runs each one, and streams every
node turn back as it happens. TextHandler targets interactive use and
renders the final answer as Markdown; JSONHandler emits one JSON object per
line for machine consumers.

# Usage

	r := runner.New(runner.NewTextHandler(os.Stdin, os.Stdout))
	eng, _ := multiagent.New(gateway, multiagent.WithLifecycleHooks(r.Hooks()))

	if err := r.Run(ctx, eng, "What is 2+2?"); err != nil {
		log.Fatal(err)
	}
*/
package runner
