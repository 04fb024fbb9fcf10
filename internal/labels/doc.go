// Package labels resolves user-supplied object names to Open Images
// label codes.
//
// Two matching modes exist. Strict mode (the default) requires every
// requested name to exactly equal a vocabulary entry's name, ignoring
// case; a miss is an error, so a typo never silently shrinks the
// download set. Permissive mode instead admits every vocabulary entry
// whose name contains a requested name as a whitespace-delimited
// token, so requesting "bicycle" also picks up "bicycle wheel".
package labels
