/*
Package domain contains the core domain models of the unitconv converter.

It defines the conversion modes, the session snapshot and the events emitted
while a session is driven. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Mode: the selected conversion (Distance, Temperature or Weight).
  - State: the snapshot of one session (Input, Mode, Result).
  - StateDiff: the field-level changes between two snapshots.
  - LifecycleHooks: callbacks fired when a session changes.
*/
package domain
