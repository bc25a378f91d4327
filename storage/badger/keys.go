package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/sift/core"
)

// Key prefixes for different data types
const (
	profilePrefix = "profrec"
	vectorPrefix  = "vecrec"
)

// makeProfileKey generates a key for a profile by its storage ID.
func makeProfileKey(id core.ID) []byte {
	prefix := profilePrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeVectorKey generates a composite key for a vector entry.
// Format: prefix:view:id
func makeVectorKey(view core.View, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", vectorPrefix, view)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeViewPrefix generates the common key prefix of one view's collection.
func makeViewPrefix(view core.View) []byte {
	return []byte(fmt.Sprintf("%s:%s:", vectorPrefix, view))
}
