// Package model defines the normalized event shape shared by the pipeline.
//
// Every source adapter produces model.Event values; the evaluator,
// deduplicator and sinks never see source-specific API payloads.
package model
