// Package cache stores raw model replies on disk so an unchanged file is
// not sent to a provider twice.
//
// Keys are SHA-256 digests of the provider, model, prompt version and the
// (already redacted) file content; each key maps to one JSON file named after
// the digest. Entries older than the configured TTL are ignored on lookup and
// counted as expired by Stats.
//
// The default directory is $XDG_CACHE_HOME/ohmyfix or the OS equivalent.
package cache
