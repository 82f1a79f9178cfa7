// Package review contains the core engine that turns a model's free-form
// reply into concrete edits.
//
// [Parse] tokenizes a reply into ordered [Finding] records using the
// "Error:" / "Solution:" marker convention. [Locate] finds the line a finding
// refers to with a fallback chain of exact, whitespace-normalized and
// substring matching. [Document.Replace] splices the solution into the text.
// A [Session] drives the three steps for one document, asking a [Decider]
// before each edit and matching every finding against the progressively
// updated document rather than the original snapshot.
//
// [Engine] wraps a session with prompt construction, secret redaction, the
// response cache and the provider call, producing a [FileReport] per file.
//
// Rules packs (rules.go) add focus areas and required checks to the prompt and
// may be written in JSON or YAML.
package review
