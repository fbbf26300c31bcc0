package notify

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

// Logger writes every acknowledgment to the standard logger.
type Logger struct{}

func (Logger) Notify(message string) {
	log.Printf("%s", message)
}

// Writer prints acknowledgments to w, one per line. The CLI uses it with stdout.
type Writer struct {
	W io.Writer
}

func (n Writer) Notify(message string) {
	fmt.Fprintln(n.W, message)
}

// Notice is the banner currently on display.
type Notice struct {
	Message string    `json:"message"`
	Shown   time.Time `json:"shown"`
}

// Banner keeps only the most recent acknowledgment, replacing whatever was
// showing before, and hides it once ttl has elapsed.
type Banner struct {
	mu      sync.Mutex
	current *Notice
	ttl     time.Duration
	now     func() time.Time
}

func NewBanner(ttl time.Duration) *Banner {
	return &Banner{ttl: ttl, now: time.Now}
}

func (b *Banner) Notify(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &Notice{Message: message, Shown: b.now()}
}

// Current returns the visible notice, if any.
func (b *Banner) Current() (Notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notice{}, false
	}
	if b.ttl > 0 && b.now().Sub(b.current.Shown) >= b.ttl {
		b.current = nil
		return Notice{}, false
	}
	return *b.current, true
}

// Multi fans one acknowledgment out to several notifiers.
type Multi []interface{ Notify(string) }

func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}
