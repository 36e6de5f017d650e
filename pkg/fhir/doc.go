// Package fhir provides types, interfaces, and helpers for working with
// FHIR REST servers.
//
// # Overview
//
// The fhir package defines the client interface, the opaque Resource and
// Bundle envelope types, the ordered SearchParams set, the response cache
// abstraction, and version normalization. A concrete implementation is
// provided by the fhirclient package, which wires configuration,
// transport, authentication, and caching. Most consumers should import
// fhirclient to construct a client and then interact with the interface
// exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/medwire-io/fhir-client/pkg/fhir"
//	  "github.com/medwire-io/fhir-client/pkg/fhirclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := fhirclient.New(&fhir.Config{BaseURL: "https://fhir.example.com/r4", Version: "R4"})
//	  if err != nil { log.Fatal(err) }
//
//	  patient, err := cli.Read(ctx, "Patient", "123", nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = patient
//	}
//
// # Searches and pagination
//
// Use SearchParams to express search criteria as an ordered multi-value
// set; a target may also carry an inline query string which is merged
// with the explicit parameters:
//
//	bundle, err := cli.Search(ctx, "Patient?active=true", fhir.NewSearchParams().With("name", "smith"), nil)
//
// SearchAll follows "next" links and collects every matched resource,
// failing with a BoundExceededError when the configured bound is
// exceeded:
//
//	all, err := cli.SearchAll(ctx, "Observation", params, &fhir.SearchOptions{MaxResults: 500})
//
// # Errors
//
// Server errors are represented by ResponseError carrying the parsed
// OperationOutcome. Helpers such as IsNotFound and IsUnauthorized make
// it easy to branch on common cases. Validation, version, resolution,
// and pagination-bound failures have dedicated error types and are
// detected before or after the network call, never retried.
//
// # Caching
//
// GET responses can be cached through the pluggable Cache abstraction
// (in-memory LRU or NATS KV). Caching is off unless configured, only
// GET requests are eligible, and a per-call NoCache flag bypasses both
// the lookup and the store.
package fhir
