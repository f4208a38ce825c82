package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// New returns "<prefix>_<base36 unix millis>_<16 hex chars>". IDs sort by
// creation time to the millisecond.
func New(prefix string) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	ts := strconv.FormatInt(time.Now().UTC().UnixMilli(), 36)
	return prefix + "_" + ts + "_" + hex.EncodeToString(b[:]), nil
}
