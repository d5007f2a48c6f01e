// Package filter implements the threshold evaluator.
//
// Rules are built once at startup from configuration and never mutated;
// Qualifies is a pure function of the event and the rules.
package filter
