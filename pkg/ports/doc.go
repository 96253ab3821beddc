/*
Package ports defines the driven ports (interfaces) for the unitconv hosts.

These interfaces decouple session hosting from external implementations, allowing
the Manager to work with various storage backends and lock providers.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
