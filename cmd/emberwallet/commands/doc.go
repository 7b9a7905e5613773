// Package commands defines the emberwallet CLI and wires dependencies
// for subcommands.
//
// Commands
//
//   - init     Create the wallet seed and print the wallet address
//   - address  Print the wallet address and ECDH public key
//   - send     Deliver a slate to a URL, onion, address or file
//   - listen   Serve inbound slate exchanges
//   - receive  Process a slate file and write the response file
//   - armor    Encode a slate file as armored text
//   - unarmor  Decode armored text back into a slate file
//
// # Implementation
//
// The root command loads the configuration and builds a dependency graph
// (seed store, logging backend, HTTP client) before any subcommand runs,
// so handlers can use a shared app context.
package commands
