// Package parse decodes raw model replies into tagged [Decision] values: a
// tool invocation, a final answer, or a malformed payload. Strict JSON
// decoding is tried first, with a jsonrepair fallback for the slightly broken
// JSON language models tend to produce.
package parse
