// Package parcel contains the Package aggregate and its status state machine.
// A Package moves through a fixed lifecycle from registration to delivery (or a
// return/cancel branch); every transition is recorded in the status ledger by
// the application layer, and rider binding is managed through AssignTo.
package parcel
