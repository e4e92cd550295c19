// Package llm provides an OpenAI-compatible chat client used to analyze
// extracted PDF text and propose structured filenames.
//
// The client sends document text to a configured model with a prompt
// requesting JSON output. Responses are decoded tolerantly: direct JSON
// first, then with markdown code fences stripped, then with the outermost
// JSON object extracted from surrounding prose.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.CompleteJSON: send system/user prompts, receive JSON response.
// Client.HealthCheck: verify API key and model availability.
//
// # Pacing
//
// Every call is a single attempt. Callers pace consecutive requests with a
// fixed delay; there is no retry or backoff inside the client.
package llm
