// Package todo holds the task list and reads and writes task files.
//
// A task file is an ordered array of task records:
//
//	[
//	  {
//	    "description": "Buy milk",
//	    "is_completed": false
//	  }
//	]
//
// # Store
//
// Store is the ordered in-memory list. Its methods take 0-based indices and
// return ErrIndexOutOfRange instead of touching the list when an index is out
// of bounds. Translating 1-based positions typed by a user is the caller's job.
//
// # File Format
//
// The encoding is chosen from the file extension:
//   - ".yaml", ".yml": YAML
//   - anything else: JSON with 2-space indentation and a trailing newline
//
// Both encodings are checked against an embedded JSON Schema before decoding,
// so a wrong shape (missing field, wrong type, non-array root) is reported as a
// *ParseError just like a syntax error. Unknown keys are ignored.
//
// # Load Errors
//
//   - errors.Is(err, ErrNotFound): the file does not exist (first run)
//   - *ParseError: the file exists but its content is malformed
//   - anything else: the file could not be read
package todo
