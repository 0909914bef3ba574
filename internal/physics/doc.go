// Package physics provides the stateless evaluators for the reactor
// engine: plasma behavior, magnetic configuration, power balance and
// neutronics. Every function is a pure computation over scalar inputs.
// Defined divide-by-zero cases return +Inf sentinels rather than errors.
package physics
