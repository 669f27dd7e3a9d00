/*
Package observability provides tools for monitoring the Tendril engine.

It includes Prometheus collectors and structured logging hooks, both attached to
the engine through domain.LifecycleHooks, plus a helper to combine several hook
sets into one.
*/
package observability
