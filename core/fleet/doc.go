// Package fleet builds vehicles from configuration and keeps them in a
// Garage, the single owner of vehicle state in the service.
//
// Definitions name a variant ("car", "sport_car", "lorry") and carry the
// construction parameters plus an optional initial state:
//
//	fleet:
//	  vehicles:
//	    - id: van-1
//	      type: car
//	      conf:
//	        max_passengers: 4
//	        avg_consume: 10
//	        max_liquid: 50
//
// The garage serializes every operation on a vehicle, refreshes the status
// snapshot and publishes an event from core/events on the bus.
package fleet
