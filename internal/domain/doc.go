// Package domain defines the core business entities and errors for
// interview question generation: the request and result shapes exchanged
// with the generation service, the enumerations that drive prompt
// selection, and the completion outcome returned by the LLM provider.
package domain
