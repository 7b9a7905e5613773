// Package main runs the in-memory HTTP slate relay used by emberwallet
// during development and tests. It queues slate envelopes for recipient
// wallet addresses until they fetch and acknowledge them.
//
// HTTP API
//
//	POST /v1/slate/{addr}
//	    Enqueue a RelayEnvelope destined to {addr}. If Timestamp is zero,
//	    the server fills it with the current Unix time.
//
//	GET /v1/slate/{addr}?limit=N
//	    Return up to N queued envelopes for {addr} without removing them.
//	    If limit is absent or greater than the queue length, all queued
//	    envelopes are returned.
//
//	POST /v1/slate/{addr}/ack { "count": N }
//	    Drop the first N queued envelopes for {addr}. If N exceeds the
//	    queue length, the queue is cleared.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - A lightweight access log records method, path, remote and duration
//     for each request.
//   - The default listen address is :8080.
//
// The relay is an untrusted middleman: it never sees session keys or
// slate semantics, only opaque envelopes keyed by wallet address.
package main
