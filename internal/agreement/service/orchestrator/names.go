package orchestrator

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

var (
	adjectives = []string{
		"amber", "brave", "calm", "eager", "fancy", "gentle", "happy", "jolly",
		"keen", "lively", "mellow", "nimble", "proud", "quiet", "rapid", "sunny",
	}
	animals = []string{
		"badger", "crane", "dolphin", "falcon", "gecko", "heron", "ibis", "jaguar",
		"koala", "lynx", "marten", "newt", "otter", "panda", "raven", "walrus",
	}
)

// randomName returns a readable unique resource name such as "brave-otter-1a2b3c4d".
func randomName() string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s-%s",
		adjectives[int(id[0])%len(adjectives)],
		animals[int(id[1])%len(animals)],
		hex.EncodeToString(id[2:6]),
	)
}
