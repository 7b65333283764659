// Package sentinel provides const-declarable error types used for the
// harness's exported sentinel errors.
package sentinel
