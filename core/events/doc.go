// Package events defines the vehicle events emitted on the event bus.
//
// Available event types:
//   - AddedEvent: vehicle registered in the garage
//   - RefuelEvent: liquid added to a tank
//   - LoadEvent: passengers boarded or cargo weight changed
//   - SpeedEvent: speed changed
//   - TripEstimateEvent: drive time computed or rejected
package events
