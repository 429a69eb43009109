// Package client contains the remote side of usershelf: the Fetcher
// capability the user service reads from when the local store is empty.
//
// # Implementations
//
//   - HTTPClient issues one GET to the configured endpoint and decodes a
//     JSON array of users.
//   - StubClient returns a fixed batch without any I/O and counts its calls.
//
// # Error Handling
//
// HTTPClient reports failures as *common.Error values, matchable with
// errors.Is against common.ErrInvalidEndpoint, common.ErrTransport and
// common.ErrDecode. The underlying cause stays in the chain, so
// errors.Is(err, context.DeadlineExceeded) also works.
package client
