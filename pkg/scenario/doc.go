/*
Package scenario builds the read-only data the dialog engine walks: the
scenario Graph (qualified node id to Node) and the slot Registry (slot name to
prompt and compiled value pattern).

Graphs are namespace-qualified: every node id and child reference is prefixed
with the scenario name, so several scenarios can be loaded side by side
without collisions. Both structures are immutable after construction and safe
to share across goroutines.
*/
package scenario
