package badger

import (
	"fmt"

	"github.com/poiesic/faqmatch/core"
)

// Key prefixes for different data types
const (
	vectorRecordPrefix = "qvec"
)

// makeVectorKey generates a key for a cached vector record by content ID.
func makeVectorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorRecordPrefix, id))
}
