// Package tool provides the foundational types for defining and cataloging
// tools that an agent can invoke.
//
// Each tool is adapted behind the single normalized [Func] signature, taking
// an [Args] mapping of scalar [Value] arguments and returning observation
// text. The [Registry] type holds the fixed tool catalog; use [NewRegistry]
// to construct one at process start. Registration problems (duplicate names,
// missing handlers) surface there as errors rather than at call time.
package tool
