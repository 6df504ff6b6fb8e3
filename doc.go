// Package calcengine implements the expression engine of a pocket
// calculator: a tokenizer, a bounded-arena recursive-descent parser, and a
// step-recording evaluator over a pluggable real-number backend.
//
// Evaluating an input line produces both a value and an ordered trace of
// every operation performed, formatted under a configurable arithmetic
// policy (normal, truncate, or round, by decimal places or by significant
// digits). Failures inside an expression never abort evaluation; they are
// captured as error steps and the offending subtree evaluates to zero.
//
// Two numeric backends are provided: Float64, backed by the host's double
// precision arithmetic, and Fixed7, a deterministic 7-decimal fixed-point
// backend standing in for the handheld target's decimal unit.
package calcengine
