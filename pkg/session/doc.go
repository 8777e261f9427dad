// Package session implements the appliance's control loop: a
// single-threaded, poll-driven state machine that sequences question
// capture (typed or spoken), seed derivation, answer selection, and
// presentation.
//
// The machine owns all mutable session state and is driven by the host
// calling Tick on a short fixed cadence (~10 ms). All side effects go
// through the port interfaces in ports.go; the transition logic itself
// is pure with respect to everything except the input port's monotonic
// clock, which makes the machine testable with fake ports and a fake
// clock.
package session
