// Package session is the high-level client for one SSG generator.
//
// A Session owns its transport handle exclusively from Open to Close and is
// the only component callers interact with. At open time it performs an
// identification exchange and caches the generator's operating envelope
// (model, serial, frequency and power bounds); every set command is then
// validated against the cached envelope before a single byte reaches the
// wire, so an invalid request never alters device state.
//
// # Request/Response Model
//
// Every operation is exactly one blocking round-trip: one report out, one
// report back, with a bounded read timeout. There are no retries and no
// hidden latency; retry policy belongs to callers. A mutex serializes
// concurrent callers because the generator handles a single in-flight
// request.
//
// # Timeout Semantics
//
// When the read timeout expires the operation fails with a Timeout error and
// the session state is indeterminate: the generator may have applied the
// command even though the reply was lost. Callers must treat the in-flight
// command's effect as unknown, typically by issuing a Status query next.
// This ambiguity is inherent to the transport and is surfaced, not hidden.
//
// # Identity Getters
//
// ModelName, SerialNumber, and the envelope accessors read values cached at
// open and never fail and never touch the transport. Ping performs a fresh
// identification round-trip for callers that need a liveness check.
package session
