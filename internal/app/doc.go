// Package app wires application dependencies for the CLI.
//
// It loads the wallet configuration, builds the logging backend, seed
// store and transport options, exposing them via the Wire struct for
// commands to use.
package app
