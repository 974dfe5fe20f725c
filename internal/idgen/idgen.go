// Package idgen produces the human-scannable ticket and order identifiers
// printed on tickets and read back at the gate.
package idgen

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	ticketPrefix = "TKT"
	orderPrefix  = "ORD"

	base36Charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomLen     = 5
)

// Generator mints identifiers of the form <PREFIX>-<epoch-millis>-<token>.
// The token is a fixed-length random component followed by a monotonic
// sequence number, so two calls can never return the same value within one
// process even inside the same millisecond, and the random component keeps
// cross-process collisions negligible. Calls always succeed.
type Generator struct {
	seq atomic.Uint64
}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) NextTicketID() string {
	return g.next(ticketPrefix)
}

func (g *Generator) NextOrderID() string {
	return g.next(orderPrefix)
}

func (g *Generator) next(prefix string) string {
	millis := time.Now().UnixMilli()
	n := g.seq.Add(1)
	return fmt.Sprintf("%s-%d-%s%s", prefix, millis, randomToken(randomLen), strings.ToUpper(strconv.FormatUint(n, 36)))
}

func randomToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// sequence alone, which still guarantees in-process uniqueness.
		return strings.Repeat("0", n)
	}
	for i := range buf {
		buf[i] = base36Charset[int(buf[i])%len(base36Charset)]
	}
	return string(buf)
}
