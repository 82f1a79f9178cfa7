// Package providers sends prompts to hosted or local language models.
//
// Supported providers: Google (Gemini, the default), OpenAI, Anthropic, and
// Ollama / LM Studio for local models. Gemini, Anthropic and Ollama speak
// their HTTP APIs directly; OpenAI goes through the go-openai client.
//
// All providers share a retry helper with exponential back-off for rate
// limits and transient server errors. HTTP clients are injectable so tests
// can redirect calls to httptest servers.
//
// Use [New] to obtain a Provider by name and model string.
package providers
