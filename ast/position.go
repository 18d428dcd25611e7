package ast

// Position is a byte offset into the original input buffer a node was
// parsed from. A negative value means the node carries no position
// (synthesized by error recovery or a transforming visitor).
type Position int

// NoPosition marks a node that was not produced directly from input text.
// Left untyped so it converts freely to both int (constructor parameters)
// and Position (the Position() accessors).
const NoPosition = -1
