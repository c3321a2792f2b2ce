// Package lawtest contains a test runner framework that is similar to Go's testing package,
// but is run as regular Go application code rather than Go tests. It adds hierarchical test IDs
// with regex filters, captured debug output per test, and console and JUnit reporting, and it
// knows how to report the outcomes of a law set as individual tests.
package lawtest
