// Package backoffice provides the HTTP client for the Ecume back-office API.
//
// The API exposes list endpoints for products, users, clients, and orders,
// a product creation endpoint accepting JSON or multipart payloads, and a
// WebSocket order event stream. This package owns the wire contract: typed
// entity records, explicit response parsing, the error taxonomy, and the
// submission result type.
//
// # Response Parsing
//
// Every response body passes through an explicit parse step. Collection
// envelopes ({"produitList": [...]}) are decoded through pointer fields so
// a missing or mistyped collection key becomes an unexpected-format error
// instead of silently reading as an empty list.
//
// # Error Handling
//
// All failures are *APIError values with a Kind drawn from {Network,
// Validation, NotFound, Server, UnexpectedFormat, Timeout}. Transport
// failures carry no status code; HTTP failures are classified by status
// range, with the message lifted from the response body's "message" or
// "error" field when present. Errors support errors.As/Unwrap chains.
//
// # Usage Example
//
//	client := backoffice.NewClient("http://localhost:5000")
//
//	products, err := client.ListProducts(ctx)
//	if err != nil {
//	    fmt.Println(backoffice.ShortMessage(err))
//	    return
//	}
//
//	result := client.CreateProduct(ctx, payload)
//	if !result.Success {
//	    // the caller keeps its draft and lets the user retry
//	    fmt.Println(backoffice.ShortMessage(result.Err))
//	}
//
// # Concurrency
//
// Client is safe for concurrent use. Each request takes a context so the
// owning view can cancel in-flight work when it is torn down; requests are
// additionally bounded by the client timeout.
package backoffice
