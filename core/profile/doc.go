// Package profile builds the deterministic probability model a synthesis run
// samples against: piecewise-constant diurnal curves for weekdays and
// weekends, their weekly rebalancing and the seasonal expansion to one value
// per timestep of the year.
package profile
