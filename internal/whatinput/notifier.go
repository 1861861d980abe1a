package whatinput

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Listener receives committed method changes.
//
// Listeners are compared by identity on removal, so implementations must be
// comparable types (typically pointers).
type Listener interface {
	MethodChanged(m Method)
}

// FuncListener adapts a function to the Listener interface. Keep the
// returned pointer to unregister it later.
type FuncListener struct {
	fn func(Method)
}

// OnChange wraps fn in a Listener.
func OnChange(fn func(Method)) *FuncListener {
	return &FuncListener{fn: fn}
}

// MethodChanged calls the wrapped function.
func (f *FuncListener) MethodChanged(m Method) {
	if f.fn != nil {
		f.fn(m)
	}
}

type subscription struct {
	listener Listener
	channel  Channel
}

// Notifier is an ordered registry of listeners keyed by channel.
type Notifier struct {
	mu   sync.Mutex
	subs []subscription
	log  *zap.Logger
}

// NewNotifier creates an empty registry. A nil logger disables logging.
func NewNotifier(log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{log: log}
}

// Register appends l for channel ch. An empty channel means ChannelInput.
// The same listener may be registered several times.
func (n *Notifier) Register(l Listener, ch Channel) {
	if l == nil {
		n.log.Debug("ignoring nil listener")
		return
	}
	if !reflect.TypeOf(l).Comparable() {
		n.log.Warn("ignoring listener of non-comparable type",
			zap.String("type", fmt.Sprintf("%T", l)))
		return
	}
	if ch == "" {
		ch = ChannelInput
	}

	n.mu.Lock()
	n.subs = append(n.subs, subscription{listener: l, channel: ch})
	n.mu.Unlock()
}

// Unregister removes the first subscription of l and reports whether one
// was found.
func (n *Notifier) Unregister(l Listener) bool {
	if l == nil {
		return false
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	pos := n.position(l)
	if pos < 0 {
		return false
	}
	n.subs = append(n.subs[:pos], n.subs[pos+1:]...)
	return true
}

func (n *Notifier) position(l Listener) int {
	for i, s := range n.subs {
		if s.listener == l {
			return i
		}
	}
	return -1
}

// Len returns the number of subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Notify calls every listener registered for ch, in registration order,
// with m. A panicking listener is logged and skipped.
func (n *Notifier) Notify(ch Channel, m Method) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		if s.channel != ch {
			continue
		}
		n.call(s.listener, ch, m)
	}
}

func (n *Notifier) call(l Listener, ch Channel, m Method) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error("listener panicked",
				zap.String("channel", string(ch)),
				zap.String("method", m.String()),
				zap.Any("panic", r),
			)
		}
	}()
	l.MethodChanged(m)
}
