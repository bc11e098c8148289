package dnscache

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dchest/siphash"
	"github.com/dnsscience/dnsdig/internal/message"
)

const defaultShardCount = 256 // power of 2, for fast modulo via bitmasking

type entry struct {
	reply   *message.Reply
	expires time.Time
}

type shard struct {
	mu      sync.RWMutex
	entries map[uint64]entry
	maxSize int
}

// Sharded is a fixed-shard-count, SipHash-keyed cache of replies. Each
// shard has its own lock so concurrent lookups for unrelated questions
// never contend. SipHash keying means an attacker who controls query
// names cannot predict which shard (and which lock) a flood of lookups
// will land on.
type Sharded struct {
	shards    []*shard
	shardMask uint64
	k0, k1    uint64
	hits      atomic.Uint64
	miss      atomic.Uint64
}

// NewSharded builds a Sharded cache of defaultShardCount shards, each
// holding maxEntries/defaultShardCount entries (at least one, so the
// total capacity is never below defaultShardCount), keyed with a freshly
// generated random SipHash key.
func NewSharded(maxEntries int) *Sharded {
	var keyBuf [16]byte
	if _, err := rand.Read(keyBuf[:]); err != nil {
		panic("dnscache: failed to seed SipHash key: " + err.Error())
	}

	shardSize := maxEntries / defaultShardCount
	if shardSize < 1 {
		shardSize = 1
	}

	c := &Sharded{
		shards:    make([]*shard, defaultShardCount),
		shardMask: uint64(defaultShardCount - 1),
		k0:        binary.LittleEndian.Uint64(keyBuf[0:8]),
		k1:        binary.LittleEndian.Uint64(keyBuf[8:16]),
	}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[uint64]entry, shardSize), maxSize: shardSize}
	}
	return c
}

// questionKeyBytes renders the canonical (case-folded) bytes of a
// question for hashing: name, type, class. The name's trailing dot is
// dropped so absolute and relative forms share a key, as in
// Question.Equal.
func questionKeyBytes(q message.Question) []byte {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(strings.ToLower(q.Name.String()), "."))
	b.WriteByte(0)
	var tc [4]byte
	binary.BigEndian.PutUint16(tc[0:2], uint16(q.Type))
	binary.BigEndian.PutUint16(tc[2:4], uint16(q.Class))
	b.Write(tc[:])
	return []byte(b.String())
}

func (c *Sharded) hash(q message.Question) uint64 {
	return siphash.Hash(c.k0, c.k1, questionKeyBytes(q))
}

func (c *Sharded) shardFor(hash uint64) *shard {
	return c.shards[hash&c.shardMask]
}

// Get returns the cached reply for q if present and not yet expired.
func (c *Sharded) Get(q message.Question) (*message.Reply, bool) {
	hash := c.hash(q)
	sh := c.shardFor(hash)

	sh.mu.RLock()
	e, ok := sh.entries[hash]
	sh.mu.RUnlock()

	if !ok || time.Now().After(e.expires) {
		c.miss.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.reply, true
}

// Put stores reply for q with the given expiry, evicting the
// soonest-to-expire entry in the target shard if it is at capacity.
func (c *Sharded) Put(q message.Question, reply *message.Reply, expires time.Time) {
	hash := c.hash(q)
	sh := c.shardFor(hash)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.entries[hash]; !exists && len(sh.entries) >= sh.maxSize {
		c.evictOldest(sh)
	}
	sh.entries[hash] = entry{reply: reply, expires: expires}
}

func (c *Sharded) evictOldest(sh *shard) {
	var oldestHash uint64
	var oldestExpiry time.Time
	first := true
	for hash, e := range sh.entries {
		if first || e.expires.Before(oldestExpiry) {
			oldestHash = hash
			oldestExpiry = e.expires
			first = false
		}
	}
	if !first {
		delete(sh.entries, oldestHash)
	}
}

// Stats reports hit/miss counters across all shards.
func (c *Sharded) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.miss.Load()
}
