package bindable

import (
	"fmt"
	"sync/atomic"
)

// Role names the kind of work an ExecutionContext stands for.
type Role uint8

const (
	RoleUpdate Role = iota // game logic and scene updates
	RoleDraw               // render submission
	RoleAudio              // audio mixing
	RoleInput              // input polling and dispatch
)

var roleNames = [...]string{
	RoleUpdate: "update",
	RoleDraw:   "draw",
	RoleAudio:  "audio",
	RoleInput:  "input",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// ExecutionContext is an explicit token for one logical owner of state, such
// as the update loop. Code running on behalf of the owner brackets its work
// with Enter and the returned exit func; components holding the token can
// then assert they are only touched while it is active.
//
// Lists do no locking. Attaching an owner with List.SetOwner only adds debug
// assertions; callers still have to serialize access themselves.
type ExecutionContext struct {
	role  Role
	depth atomic.Int32
}

// NewExecutionContext creates an inactive context for the given role.
func NewExecutionContext(role Role) *ExecutionContext {
	return &ExecutionContext{role: role}
}

// Role returns the role the context was created with.
func (c *ExecutionContext) Role() Role {
	return c.role
}

// Enter marks the context active until the returned func is called. Calls
// nest; the context stays active until every exit has run.
func (c *ExecutionContext) Enter() (exit func()) {
	c.depth.Add(1)
	var done atomic.Bool
	return func() {
		if done.CompareAndSwap(false, true) {
			c.depth.Add(-1)
		}
	}
}

// Active reports whether the context has been entered and not yet exited.
func (c *ExecutionContext) Active() bool {
	return c.depth.Load() > 0
}

// EnsureActive panics in debug mode when c is not active. A nil context
// always passes. op names the operation for the panic message.
func EnsureActive(c *ExecutionContext, op string) {
	if !globalDebug || c == nil {
		return
	}
	if !c.Active() {
		panic(fmt.Sprintf("bindable debug: %s outside the %s context", op, c.role))
	}
}

// EnsureInactive panics in debug mode when c is active, for code that must
// never run on behalf of that owner (for example blocking work on update).
func EnsureInactive(c *ExecutionContext, op string) {
	if !globalDebug || c == nil {
		return
	}
	if c.Active() {
		panic(fmt.Sprintf("bindable debug: %s inside the %s context", op, c.role))
	}
}
