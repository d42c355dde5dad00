// Package generation provides the rate-limited, retrying invocation layer
// between the orchestration core and the external LLM completion service.
// It abstracts the provider behind the Client interface, so the
// application can invoke any request/response-style text-completion API
// without coupling to a specific vendor SDK.
package generation
