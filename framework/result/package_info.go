// Package result defines TestResult, the value produced by checking a law.
//
// A TestResult is a list of outcomes, one per labeled law that was checked. Failing a law is never
// an error in the Go sense; it is a TestResult whose OK method returns false. Results can be
// combined with And, which keeps every outcome from both sides, and tagged with Label, which adds
// a name to the front of every outcome's label path.
package result
