// Package registry maps node action names to in-process functions.
package registry
