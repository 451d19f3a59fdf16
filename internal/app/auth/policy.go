package auth

import (
	"github.com/google/uuid"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/pkg/apperrors"
)

// Action is a mutation the policy can be asked about
type Action string

const (
	ActionUpdateUser    Action = "user:update"
	ActionVerifyUser    Action = "user:verify"
	ActionSetRole       Action = "user:set_role"
	ActionDeleteUser    Action = "user:delete"
	ActionPlaceUser     Action = "user:place"
	ActionCreateCompany Action = "company:create"
	ActionUpdateCompany Action = "company:update"
	ActionDeleteCompany Action = "company:delete"
)

// DenyReason names why a request was denied
type DenyReason string

const (
	ReasonInvalidIdentifier        DenyReason = "InvalidIdentifier"
	ReasonPermissionDenied         DenyReason = "PermissionDenied"
	ReasonSelfActionForbidden      DenyReason = "SelfActionForbidden"
	ReasonInvalidRole              DenyReason = "InvalidRole"
	ReasonInvalidVerificationValue DenyReason = "InvalidVerificationValue"
)

type actionRule struct {
	permission Permission
	// targeted actions carry an identifier that must be well-formed
	targeted    bool
	invalidID   string
	selfAllowed bool   // the permission is not needed when acting on oneself
	selfDenied  string // non-empty when acting on oneself is forbidden
}

var actionRules = map[Action]actionRule{
	ActionUpdateUser: {permission: PermUsersUpdate, targeted: true, invalidID: "Invalid user ID", selfAllowed: true},
	ActionVerifyUser: {permission: PermUsersVerify, targeted: true, invalidID: "Invalid user ID", selfDenied: "You cannot verify your own account"},
	ActionSetRole:    {permission: PermUsersRole, targeted: true, invalidID: "Invalid user ID", selfDenied: "You cannot change your own role"},
	ActionDeleteUser: {permission: PermUsersDelete, targeted: true, invalidID: "Invalid user ID", selfDenied: "You cannot delete your own account"},
	ActionPlaceUser:  {permission: PermUsersPlace, targeted: true, invalidID: "Invalid user ID"},

	ActionCreateCompany: {permission: PermCompaniesWrite},
	ActionUpdateCompany: {permission: PermCompaniesWrite, targeted: true, invalidID: "Invalid company ID"},
	ActionDeleteCompany: {permission: PermCompaniesWrite, targeted: true, invalidID: "Invalid company ID"},
}

// Caller is the authenticated identity a request runs as
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

// CallerFrom builds a Caller from a user record
func CallerFrom(u *models.User) Caller {
	return Caller{ID: u.ID, Role: u.Role}
}

// Request describes an attempted mutation. Role is only read for
// ActionSetRole and Verified only for ActionVerifyUser; Verified holds the
// decoded JSON value so that non-boolean payloads reach the policy.
type Request struct {
	Action   Action
	TargetID string
	Role     string
	Verified interface{}
}

// Decision is the outcome of Authorize
type Decision struct {
	Allowed bool
	Reason  DenyReason
	Message string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason DenyReason, msg string) Decision {
	return Decision{Reason: reason, Message: msg}
}

// Authorize evaluates req on behalf of caller. Rules are applied in order and
// the first failing rule decides: identifier syntax, role capability,
// self-action, requested role, requested verification value.
func Authorize(caller Caller, req Request) Decision {
	rule, ok := actionRules[req.Action]
	if !ok {
		return deny(ReasonPermissionDenied, "You do not have permission to perform this action")
	}

	var target uuid.UUID
	if rule.targeted {
		id, err := uuid.Parse(req.TargetID)
		if err != nil {
			return deny(ReasonInvalidIdentifier, rule.invalidID)
		}
		target = id
	}

	self := rule.targeted && target == caller.ID
	if !HasPermission(caller.Role, rule.permission) && !(rule.selfAllowed && self) {
		return deny(ReasonPermissionDenied, "You do not have permission to perform this action")
	}

	if self && rule.selfDenied != "" {
		return deny(ReasonSelfActionForbidden, rule.selfDenied)
	}

	if req.Action == ActionSetRole && !models.Role(req.Role).IsValid() {
		return deny(ReasonInvalidRole, "Invalid role")
	}

	if req.Action == ActionVerifyUser {
		if _, isBool := req.Verified.(bool); !isBool {
			return deny(ReasonInvalidVerificationValue, "Invalid verification status")
		}
	}

	return allow()
}

// Err converts a denial into an error, or returns nil when d allows.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DenialError{Reason: d.Reason, Message: d.Message}
}

// DenialError is returned for requests the policy rejects. Capability and
// self-action denials unwrap to apperrors.ErrPermissionDenied, malformed
// input to apperrors.ErrValidationFailed.
type DenialError struct {
	Reason  DenyReason
	Message string
}

func (e *DenialError) Error() string {
	return e.Message
}

func (e *DenialError) Unwrap() error {
	switch e.Reason {
	case ReasonPermissionDenied, ReasonSelfActionForbidden:
		return apperrors.ErrPermissionDenied
	default:
		return apperrors.ErrValidationFailed
	}
}

// CanPerform reports whether role could ever perform action. The CLI uses it
// to decide which affordances to render.
func CanPerform(role models.Role, action Action) bool {
	rule, ok := actionRules[action]
	return ok && HasPermission(role, rule.permission)
}
