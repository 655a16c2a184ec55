// Package output renders validation results for the CLI.
//
// Two formatters are available: a colored console formatter for humans
// and a JSON formatter for machine consumption.
package output
