/*
Package domain contains the core domain models of the Tendril dialog engine.

It is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Node: one conversational state (intent phrases, required slots, children, response template).
  - SlotDefinition: how a slot is prompted for and recognized in free text.
  - DialogState: the per-session memory mutated by every turn.
  - Action: the policy decision of a turn (ask or answer).
*/
package domain
