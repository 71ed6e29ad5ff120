// Package model holds the value types shared by the synthesis pipeline:
// day types, sampling methods, allocation strategies, draw-off events and the
// resulting demand series, together with the sentinel errors every stage
// wraps.
package model
