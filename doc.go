/*
Package tendril is a scripted, multi-turn dialog engine for task-oriented conversations.

A scenario is a graph of nodes. Each node stands for one intent: a few example
phrases, the slots (pieces of information) it needs, the follow-up nodes it
unlocks and a response template. Every turn the engine picks the reachable node
whose phrases are most similar to the utterance, extracts slot values with the
patterns of the slot table, and either asks for the first missing slot or
answers with the filled template.

# Concept

The engine is deterministic and holds no session data. The caller owns a
DialogState per session and passes it to every turn, which makes the engine
easy to embed in a console, an HTTP server or an MCP tool server. A failed turn
leaves the state untouched.

# Scenario Files

A scenario directory holds one slot table (.csv or .xlsx, columns slot, query,
values) and any number of scenario files (.json, .yaml or .yml), each an array
of node records:

	[
	  {"id": "node1", "intent": ["我想买衣服"], "slot": ["size"],
	   "childnode": ["node2"], "response": "好的，您要的尺码是size"}
	]

Node ids are qualified with the scenario file name ("buy-clothes-node1"), so
several scenarios can be loaded side by side. New sessions may start with the
first node of every scenario.

# Usage

	engine, err := tendril.New("./examples/buy-clothes")
	if err != nil {
		log.Fatal(err)
	}

	state := engine.Start("session-123")
	reply, state, err := engine.ProcessTurn(ctx, "我想买衣服", state)
	if errors.Is(err, domain.ErrNoReachableIntent) {
		// nothing left to talk about
	}
	fmt.Println(reply)
*/
package tendril
