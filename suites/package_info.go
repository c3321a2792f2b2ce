// Package suites is the catalog of law suites that the harness runs. A suite pairs a law set with
// the generator and environment it is checked against; suites are grouped by the kind of value
// they sample ("ints", "strings", "json") or, for stores, by the environment ("stores").
package suites
