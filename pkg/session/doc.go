/*
Package session implements per-session serialization of dialog turns.

A DialogState is not safe for concurrent mutation, so every turn of a session
runs under that session's lock: a local mutex, plus an optional distributed
lock when several replicas share one store. Independent sessions never
contend with each other.
*/
package session
