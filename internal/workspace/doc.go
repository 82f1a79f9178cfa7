// Package workspace discovers the files a codebase run reviews.
//
// A [Lister] turns a root directory into a lazy, single-pass sequence of file
// paths. [GitLister] asks git for tracked and untracked-but-not-ignored files;
// [DirLister] walks the tree itself, skipping dependency and dot directories.
// Both apply include/exclude globs and drop dotfiles, binaries and oversized
// files.
package workspace
