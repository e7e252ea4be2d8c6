package stewardtest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/steward-one/steward"
)

// NewCondition returns a random condition, as if a new actor
// joined the system
func NewCondition() steward.Condition {
	data := make([]byte, 20)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return steward.NewCondition("test", "random", data)
}

// SequenceID returns an ID encoded the same way sequence counters
// serialize their state. Use it to reference entities created with a
// sequence-generated primary key.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
