package storage

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/google/uuid"
)

const (
	scenarioPrefix    = "scenario/"
	fingerprintPrefix = "fingerprint/"
)

func hashKey(key string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64()
}

// fingerprint identifies an operation set independent of when it was found.
func fingerprint(catalog []string, script string) string {
	return fmt.Sprintf("%016x", hashKey(strings.Join(catalog, " ")+"\n"+script))
}

func scenarioKey(id uuid.UUID) []byte {
	return []byte(scenarioPrefix + id.String())
}

func fingerprintKey(fp string) []byte {
	return []byte(fingerprintPrefix + fp)
}
