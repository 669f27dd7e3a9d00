/*
Package dsl provides a Go DSL for building Tendril scenarios in code.

It is an alternative to JSON/YAML scenario files and a slot table, handy for
tests, embedded bots and generated scenarios.

Example usage:

	b := dsl.New("pizza").
		Slot("topping", "Which topping?", "cheese|ham|mushroom")

	b.Add("order").
		When("order a pizza", "i want pizza").
		Needs("topping").
		Then("pay").
		Say("One topping pizza, anything else?").
		Add("pay").
		When("how much", "pay").
		Say("That is 9 euros.").
		Do("charge")

	graph, registry, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	engine, err := tendril.New("", tendril.WithGraph(graph), tendril.WithRegistry(registry))
*/
package dsl
