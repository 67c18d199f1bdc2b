// Package enrichkit validates and extracts the structured payloads flowing
// through an event-enrichment pipeline. It guarantees that only
// schema-conformant, well-shaped data reaches the rest of the pipeline while
// keeping enough diagnostic detail to explain every rejection.
//
// Two independent components share the self-describing vocabulary:
//
// The Extractor pulls the JSON attachments off an incoming event (a contexts
// envelope and an unstruct-event envelope), parses each as a self-describing
// document, checks it against the expected schema family, and submits it to
// the schema registry. Accepted documents come back in the Result; every
// rejection becomes a structured failure record instead of an error, so one
// bad context never aborts the whole event. Enrichment-produced contexts go
// through ValidateBatch instead, which is all-or-nothing: those documents are
// internally generated, and any violation indicates a pipeline bug.
//
// Convert turns tabular query rows into self-describing JSON contexts: each
// row is flattened into a JSON object (with configurable property naming),
// the row count is checked against the configured policy, and the accepted
// rows are wrapped per the describe mode, either one context for the whole
// set or one per row.
//
// The schema registry itself is a consumed capability behind the
// RegistryClient interface; this module performs no schema resolution,
// network I/O, or persistence of its own. Failure records can be forwarded to
// the pipeline's bad-row stream through FailureSink, which publishes over any
// Watermill-compatible broker.
package enrichkit
