// Package hosterror provides the host error channel: a process-wide stream of uncaught
// errors that any goroutine can report into. The renderer reports recovered frame panics
// and surface failures here, and each engine mount subscribes with a keyword filter so
// only errors attributed to the 3D subsystem degrade the backdrop.
package hosterror
