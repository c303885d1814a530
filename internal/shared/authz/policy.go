package authz

import (
	"errors"
	"fmt"
)

// Role của actor lấy từ token
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor là identity đã xác thực, được truyền tường minh vào mọi policy call
type Actor struct {
	UserID int64
	Role   Role
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// Operation trên một property
type Operation string

const (
	OpRead     Operation = "read"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpMarkSold Operation = "mark_sold"
	OpDelete   Operation = "delete"
)

// Deny reasons trả nguyên văn cho client
const (
	ReasonCreate   = "You must be logged in to create a property!"
	ReasonUpdate   = "You are allowed to update your property only!"
	ReasonMarkSold = "You are allowed to mark as sold your property only!"
	ReasonDelete   = "You are allowed to delete your property only!"
	ReasonUnknown  = "Operation not permitted"
)

// Decision là kết quả của Authorize
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err trả về *DeniedError khi bị từ chối, nil khi được phép
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// DeniedError map sang HTTP 403
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("authorization denied: %s", e.Reason)
}

func IsDenied(err error) bool {
	var d *DeniedError
	return errors.As(err, &d)
}

// AsDenied lấy DeniedError ra khỏi chuỗi wrap
func AsDenied(err error) (*DeniedError, bool) {
	var d *DeniedError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}

// Authorize quyết định allow/deny cho (actor, owner, operation).
//
//	read      -> luôn cho phép, actor có thể nil
//	create    -> mọi user đã đăng nhập
//	update    -> chỉ owner
//	mark_sold -> chỉ owner
//	delete    -> owner hoặc admin
//
// Operation không biết thì deny.
func Authorize(actor *Actor, ownerID int64, op Operation) Decision {
	switch op {
	case OpRead:
		return allow()
	case OpCreate:
		if actor == nil {
			return deny(ReasonCreate)
		}
		return allow()
	case OpUpdate:
		if isOwner(actor, ownerID) {
			return allow()
		}
		return deny(ReasonUpdate)
	case OpMarkSold:
		if isOwner(actor, ownerID) {
			return allow()
		}
		return deny(ReasonMarkSold)
	case OpDelete:
		if isOwner(actor, ownerID) || actor.IsAdmin() {
			return allow()
		}
		return deny(ReasonDelete)
	default:
		return deny(ReasonUnknown)
	}
}

func isOwner(actor *Actor, ownerID int64) bool {
	return actor != nil && actor.UserID == ownerID
}
