package dynamo

import "errors"

// Domain errors for controller operations.
var (
	// ErrConfiguration indicates an invalid body set or a registration made
	// at a point where it is no longer allowed.
	ErrConfiguration = errors.New("dynamo: invalid configuration")

	// ErrBinding indicates an input router scoped to a body the controller
	// does not own.
	ErrBinding = errors.New("dynamo: invalid input binding")

	// ErrSlotRange indicates a read-back with a slot outside the registry.
	ErrSlotRange = errors.New("dynamo: slot out of range")

	// ErrTimestep indicates a negative or non-finite fixed timestep.
	ErrTimestep = errors.New("dynamo: invalid timestep")
)
