// Package secure implements the authenticated-encryption envelope and the
// secure JSON-RPC channel wrapped around the wallet's owner API.
//
// A caller's JSON payload is sealed with AES-256-GCM under a 256-bit
// session key into an EncryptedBody (random 12-byte nonce as hex,
// ciphertext plus 16-byte tag as base64), then framed as a JSON-RPC 2.0
// request or response whose method is the fixed sentinel
// "encrypted_request_v3". The real method name is recoverable only after
// decryption.
//
// Failures before or during envelope handling are reported with the
// plaintext ErrorResponse shape; failures inside the payload travel
// encrypted. Decryption failures collapse to one generic message so the
// channel never acts as a padding or key oracle.
package secure
