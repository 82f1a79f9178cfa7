// Ohmyfix is a local CLI that asks an LLM for syntax errors and typos and
// applies the one-line fixes you confirm.
//
// Each finding is shown with its proposed solution and applied only after a
// yes, so nothing is rewritten behind your back. Exit codes are
// deterministic for scripted use.
//
// Usage:
//
//	ohmyfix                           # interactive menu
//	ohmyfix fix file src/app.js       # review and patch specific files
//	ohmyfix fix codebase              # review every candidate file
//	ohmyfix fix snippet < broken.py   # patch a snippet from stdin
//	ohmyfix deps                      # report package.json version conflicts
//	ohmyfix setup                     # save GOOGLE_API_KEY to .env
package main
