// Package drawoff samples the magnitudes of hot-water draw-off events.
//
// Generator draws one flow rate per event from a bounded Beta or a Gaussian
// distribution and pairs each with a placement key drawn uniformly over the
// domain of the curve the events will later be allocated against. Magnitude
// and key are independent draws.
//
// AverageProfile builds the mean daily flow curve used by the thinning
// strategy instead of discrete events.
//
// All randomness comes from the rand.Source handed to the constructors, so a
// seeded source reproduces a run exactly.
package drawoff
