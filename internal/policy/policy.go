// Package policy is the single place where access rules for the
// property hierarchy live. Handlers resolve the request path into a
// resource chain, then ask Authorize before touching the store.
package policy

import "github.com/ogennaisrael01/PropertyHub/internal/models"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

type ResourceKind string

const (
	KindHouse      ResourceKind = "house"
	KindUnit       ResourceKind = "unit"
	KindHouseImage ResourceKind = "house_image"
	KindRental     ResourceKind = "rental"
)

// Principal is the acting identity. The zero value is anonymous.
type Principal struct {
	ID            uint
	Role          string
	IsStaff       bool
	IsActive      bool
	Authenticated bool
}

// Resource is one entity on the resolved request path. OwnerID is the
// effective owner: for a Unit or HouseImage that is the owner of its
// House, never an owner of its own.
type Resource struct {
	Kind    ResourceKind
	ID      uint
	OwnerID uint
}

type Reason string

const (
	ReasonNotAuthenticated Reason = "NotAuthenticated"
	ReasonWrongRole        Reason = "WrongRole"
	ReasonNotOwner         Reason = "NotOwner"
	ReasonIsOwner          Reason = "IsOwner"
	ReasonResourceNotFound Reason = "ResourceNotFound"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Predicate is one independently testable access rule.
type Predicate func(p Principal, action Action, chain []Resource) Decision

func IsAuthenticated(p Principal, action Action, chain []Resource) Decision {
	if !p.Authenticated || !p.IsActive {
		return Deny(ReasonNotAuthenticated)
	}
	return Allow()
}

func RoleIs(role string) Predicate {
	return func(p Principal, action Action, chain []Resource) Decision {
		if p.Role != role {
			return Deny(ReasonWrongRole)
		}
		return Allow()
	}
}

// IsResourceOwner compares the principal against the effective owner of
// the deepest resource on the chain.
func IsResourceOwner(p Principal, action Action, chain []Resource) Decision {
	if len(chain) == 0 {
		return Deny(ReasonResourceNotFound)
	}

	if chain[len(chain)-1].OwnerID != p.ID {
		return Deny(ReasonNotOwner)
	}

	return Allow()
}

func IsStaff(p Principal, action Action, chain []Resource) Decision {
	if !p.IsStaff {
		return Deny(ReasonWrongRole)
	}
	return Allow()
}

// And denies with the first failing predicate's reason.
func And(preds ...Predicate) Predicate {
	return func(p Principal, action Action, chain []Resource) Decision {
		for _, pred := range preds {
			if d := pred(p, action, chain); !d.Allowed {
				return d
			}
		}
		return Allow()
	}
}

// Or allows if any predicate allows, otherwise reports the first
// denial.
func Or(preds ...Predicate) Predicate {
	return func(p Principal, action Action, chain []Resource) Decision {
		var first Decision

		for i, pred := range preds {
			d := pred(p, action, chain)
			if d.Allowed {
				return d
			}
			if i == 0 {
				first = d
			}
		}

		return first
	}
}

// Not inverts pred, denying with the given reason when pred allows.
func Not(pred Predicate, reason Reason) Predicate {
	return func(p Principal, action Action, chain []Resource) Decision {
		if d := pred(p, action, chain); d.Allowed {
			return Deny(reason)
		}
		return Allow()
	}
}

// ReadOnlyOrElevated allows read and list unconditionally and defers
// everything else to pred.
func ReadOnlyOrElevated(pred Predicate) Predicate {
	return func(p Principal, action Action, chain []Resource) Decision {
		if action == ActionRead || action == ActionList {
			return Allow()
		}
		return pred(p, action, chain)
	}
}

// houseMutation is the rule for changing a House or anything that
// inherits its ownership. The original system additionally denied staff
// owners on update/delete, which was a bug and is not reproduced.
var houseMutation = And(
	IsAuthenticated,
	RoleIs(models.RoleOwner),
	IsResourceOwner,
)

// rentalCreation: only tenants rent, and never from themselves.
var rentalCreation = And(
	IsAuthenticated,
	RoleIs(models.RoleTenant),
	Not(IsResourceOwner, ReasonIsOwner),
)

var tables = map[ResourceKind]Predicate{
	KindHouse:      ReadOnlyOrElevated(houseMutation),
	KindUnit:       ReadOnlyOrElevated(houseMutation),
	KindHouseImage: ReadOnlyOrElevated(houseMutation),
	KindRental: func(p Principal, action Action, chain []Resource) Decision {
		if action == ActionRead || action == ActionList {
			return IsAuthenticated(p, action, chain)
		}
		return rentalCreation(p, action, chain)
	},
}

// Authorize evaluates the policy table for the deepest resource on the
// chain. An empty chain means path resolution failed upstream.
func Authorize(p Principal, action Action, chain []Resource) Decision {
	if len(chain) == 0 {
		return Deny(ReasonResourceNotFound)
	}

	pred, ok := tables[chain[len(chain)-1].Kind]

	if !ok {
		return Deny(ReasonResourceNotFound)
	}

	return pred(p, action, chain)
}
