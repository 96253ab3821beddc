/*
Package session implements the converter session and its hosting.

Session is the single-owner state model: it holds the raw input, the selected
mode and the displayed result, and recomputes the result on every event. It is
not safe for concurrent use.

Manager hosts many sessions for shared front-ends (HTTP, MCP). It serializes
events per session with reference-counted local locks, optionally coordinates
replicas through a distributed lock, and persists each snapshot through a
ports.StateStore.
*/
package session
