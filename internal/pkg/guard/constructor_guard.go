// Package guard provides ConstructorGuard, a marker that distinguishes values built
// through their constructors from zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in value objects, commands and queries whose zero value
// must be rejected. Only NewConstructorGuard produces a guard that passes Validate.
//
// Example:
//
//	type Ping struct {
//	    courierID string
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewPing(courierID string) (Ping, error) {
//	    if courierID == "" {
//	        return Ping{}, errs.NewValueIsRequiredError("courierId")
//	    }
//	    return Ping{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Ping) Validate() error {
//	    return p.guard.Validate(ErrPingIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed guards and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
