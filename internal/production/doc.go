// Package production provides production integrations for the mutation protocol:
// structured logging and metrics observers, event publishing, snapshot persistence
// of sealed structures, and batch visualization.
package production
