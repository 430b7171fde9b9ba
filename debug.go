package bindable

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// globalDebug gates the debug checks below. It is set by SetDebugMode or
// Scene.SetDebugMode and read without synchronization; flip it before the
// owning loop starts.
var globalDebug bool

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Str("component", "bindable").Logger()

// SetDebugMode enables or disables debug mode. When enabled, owner context
// assertions and disposed-node checks panic, and binding activity plus
// size warnings are logged.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

// SetLogger replaces the logger used for debug output. Pass zerolog.Nop()
// to silence it.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// debugMaxBackfill is the backfill size above which a warning is logged.
const debugMaxBackfill = 10000

// debugMaxSubscribers is the subscriber count above which a warning is logged.
const debugMaxSubscribers = 1000

// debugCheckOwner asserts that the list's owner context is active.
func debugCheckOwner[T comparable](l *List[T], op string) {
	if l.owner != nil && !l.owner.Active() {
		panic(fmt.Sprintf("bindable debug: %s on list %q outside the %s context", op, l.name, l.owner.role))
	}
}

func debugCheckSubscriberCount[T comparable](l *List[T]) {
	if n := l.subs.len(); n > debugMaxSubscribers {
		logger.Warn().Str("list", l.name).Int("subscribers", n).
			Int("threshold", debugMaxSubscribers).Msg("many subscribers")
	}
}

func debugCheckBackfill[T comparable](l *List[T], n int) {
	if n > debugMaxBackfill {
		logger.Warn().Str("list", l.name).Int("items", n).
			Int("threshold", debugMaxBackfill).Msg("large backfill")
	}
}

func debugLogBind[T comparable](target, source *List[T]) {
	logger.Debug().Str("target", target.name).Str("source", source.name).
		Int("items", len(source.items)).Msg("bind")
}

func debugLogUnbind[T comparable](target, source *List[T]) {
	logger.Debug().Str("target", target.name).Str("source", source.name).Msg("unbind")
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("bindable debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugMaxTreeDepth is the tree depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn().Str("node", n.Name).Int("depth", depth).
			Int("threshold", debugMaxTreeDepth).Msg("deep tree")
	}
}
