package dsl_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/tendril"
	"github.com/aretw0/tendril/pkg/dsl"
)

func Example() {
	b := dsl.New("coffee").
		Slot("drink", "What would you like?", "latte|espresso")

	b.Add("order").
		When("a coffee please", "coffee").
		Needs("drink").
		Say("One drink coming up.")

	graph, registry, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := tendril.New("", tendril.WithGraph(graph), tendril.WithRegistry(registry))
	if err != nil {
		log.Fatal(err)
	}

	state := engine.Start("demo")
	for _, u := range []string{"coffee", "latte"} {
		reply, _, err := engine.ProcessTurn(context.Background(), u, state)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply)
	}

	// Output:
	// What would you like?
	// One latte coming up.
}
