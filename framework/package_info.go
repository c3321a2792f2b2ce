// Package framework contains the low-level infrastructure of the law-testing harness that is shared
// by all of its components. The base package contains shared types such as Logger; the rest of the
// framework lives in subpackages.
//
// The general model is:
//
// 1. A law set (package laws) describes one or more properties that sampled values must satisfy,
// optionally in some environment such as a key/value store.
//
// 2. A generator (package gen) produces a fresh, reproducible stream of samples every time a law is
// checked, and a checker (package check) decides how many samples to draw and when to stop.
//
// 3. Every check produces a result (package result) that records which named law passed or failed
// and with which samples.
//
// 4. There is a general notion of a test scope (package lawtest) which is similar to Go's
// testing.T, allowing law checks to be grouped under test identifiers, filtered, and reported to
// the console or to JUnit XML.
//
// The domain-specific code that knows which types and environments are being tested is responsible
// for choosing the laws, the generators, and the environments.
package framework
