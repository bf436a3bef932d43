package persistence

import (
	"encoding/json"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Store is the key-value persistence used by all domain stores. Every value
// is kept as a raw JSON document under its key. Implementations have no
// transaction semantics: concurrent writers race and the last write wins.
type Store interface {
	// Load unmarshals the value stored under key into out and reports
	// whether it was found and valid. Absent or corrupt values are not an
	// error: the caller keeps its fallback.
	Load(key string, out any) bool
	Save(key string, v any)
	Remove(key string)
}

// UID returns a fresh identifier, universally unique across calls.
func UID() string {
	return uuid.NewString()
}

func marshal(key string, v any) (json.RawMessage, bool) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Errorf("persistence: marshal value for key [%s]: %s", key, err)
		return nil, false
	}
	return data, true
}

func unmarshal(key string, raw json.RawMessage, out any) bool {
	if err := json.Unmarshal(raw, out); err != nil {
		log.Tracef("persistence: corrupt value for key [%s], using fallback: %s", key, err)
		return false
	}
	return true
}
