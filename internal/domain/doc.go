// Package domain defines the core data models and interfaces shared across
// the wallet communication layer: key material wrappers, the opaque slate
// carrier, the transport capability contracts, and the error taxonomy.
// It contains plain types (wire/state) and contracts (interfaces) only.
package domain
