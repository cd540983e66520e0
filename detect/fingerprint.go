package detect

import (
	"encoding/hex"
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint computes the stable identity of a finding from its rule id and
// span content. It is stable across runs and across units, so outcomes can be
// correlated between sessions.
func Fingerprint(ruleID string, spanText string) string {
	hasher, err := highwayhash.New64(key)
	if err != nil {
		return ruleID + ":" + spanText
	}
	hasher.Write([]byte(ruleID))
	hasher.Write([]byte{0})
	hasher.Write([]byte(spanText))
	return hex.EncodeToString(hasher.Sum(nil))
}
