// Package redact strips secrets from source text before it leaves the
// machine.
//
// Detection is a list of named regular expressions covering common secret
// shapes: provider API keys (Google, OpenAI, Anthropic), AWS keys, GitHub and
// Slack tokens, JWTs, bearer tokens, private key headers and secret-looking
// assignments. Every match is replaced with Placeholder, which stays on the
// same line so line numbers and matching are unaffected.
//
// Files whose paths match a configured glob are never sent at all; callers
// check ShouldRedactPath first.
package redact
