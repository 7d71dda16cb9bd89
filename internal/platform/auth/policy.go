package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Elijah-Pyers/Final-Project-MVP/internal/platform/apperror"
)

// Action is an operation on a resource kind.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionList   Action = "list"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is a kind of record subject to access control.
type Resource string

const (
	ResourceUser      Resource = "user"
	ResourcePatient   Resource = "patient"
	ResourceEncounter Resource = "encounter"
)

// Decision is the result of a policy evaluation.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Stable denial reasons. Callers surface ReasonNotAuthenticated as 401 and
// everything else as 403.
const (
	ReasonNotAuthenticated   = "not authenticated"
	ReasonInsufficientRole   = "forbidden: insufficient role permissions"
	ReasonSelfOrAdminOnly    = "forbidden: self or admin only"
	ReasonRoleChangeAdmin    = "forbidden: role change requires admin"
	ReasonBillerStatusBilled = "biller can only set status to Billed"
)

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Engine evaluates the role-based policy table. It is stateless and pure:
// a function of the identity and the requested operation only, safe for
// concurrent use without locking.
type Engine struct {
	policies map[Resource]map[Action][]Role
}

// NewEngine builds an Engine with the default policy table.
func NewEngine() *Engine {
	return &Engine{policies: defaultPolicyTable()}
}

// defaultPolicyTable is the single source of truth for role grants,
// evaluated as DENY unless a rule grants ALLOW. Self-or-admin access to User
// records is not expressible as a bare role grant; AuthorizeUser layers the
// ownership rules on top.
func defaultPolicyTable() map[Resource]map[Action][]Role {
	everyone := []Role{RoleProvider, RoleScribe, RoleBiller, RoleAdmin}
	adminOnly := []Role{RoleAdmin}

	return map[Resource]map[Action][]Role{
		ResourceUser: {
			ActionCreate: adminOnly,
			ActionRead:   adminOnly, // read-any; self handled by AuthorizeUser
			ActionList:   adminOnly,
			ActionUpdate: adminOnly, // any-target; self handled by AuthorizeUser
			ActionDelete: adminOnly,
		},
		ResourcePatient: {
			ActionCreate: {RoleProvider, RoleAdmin},
			ActionRead:   everyone,
			ActionList:   everyone,
			ActionUpdate: {RoleProvider, RoleAdmin},
			ActionDelete: adminOnly,
		},
		ResourceEncounter: {
			ActionCreate: {RoleProvider, RoleScribe, RoleAdmin},
			ActionRead:   everyone,
			ActionList:   everyone,
			// Biller updates are further restricted by the encounter
			// lifecycle: status may only be set to Billed.
			ActionUpdate: {RoleProvider, RoleBiller, RoleAdmin},
			ActionDelete: adminOnly,
		},
	}
}

// Authorize decides whether the identity may perform action on the resource
// kind. The check never touches storage: authorization precedes existence.
func (e *Engine) Authorize(ident *Identity, action Action, resource Resource) Decision {
	if ident == nil {
		return deny(ReasonNotAuthenticated)
	}
	actions, ok := e.policies[resource]
	if !ok {
		return deny(ReasonInsufficientRole)
	}
	for _, r := range actions[action] {
		if ident.Role == r {
			return allow()
		}
	}
	return deny(ReasonInsufficientRole)
}

// AuthorizeUser decides read/update access to a specific User record, where
// ownership matters: an admin may touch any record, everyone else only their
// own, and only an admin may change a role, regardless of whether the other
// fields in the same request are self-owned. The target id comes from the
// request path, so no record lookup is needed.
func (e *Engine) AuthorizeUser(ident *Identity, action Action, targetID int64, roleChange bool) Decision {
	if ident == nil {
		return deny(ReasonNotAuthenticated)
	}

	switch action {
	case ActionRead, ActionUpdate:
		if ident.Role == RoleAdmin {
			return allow()
		}
		if ident.SubjectID != targetID {
			return deny(ReasonSelfOrAdminOnly)
		}
		if roleChange {
			return deny(ReasonRoleChangeAdmin)
		}
		return allow()
	default:
		return e.Authorize(ident, action, ResourceUser)
	}
}

// Require returns echo middleware that enforces a policy table entry on a
// route. A missing identity yields 401; a policy denial yields 403 with the
// decision's reason.
func Require(engine *Engine, action Action, resource Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := IdentityFromContext(c.Request().Context())
			if ident == nil {
				return apperror.ToHTTP(apperror.Unauthenticated(ReasonNotAuthenticated))
			}
			if d := engine.Authorize(ident, action, resource); !d.Allowed {
				return apperror.ToHTTP(apperror.Forbidden(d.Reason))
			}
			return next(c)
		}
	}
}
