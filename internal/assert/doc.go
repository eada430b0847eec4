// Package assert provides contract assertions that are active only in
// builds tagged `debug`. Violations are programming errors; release builds
// must stay bounded instead of crashing across the RPC boundary.
package assert
