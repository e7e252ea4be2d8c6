package collective

import (
	"github.com/steward-one/steward"
)

// RegisterQuery will register the collective bucket as "/collectives".
func RegisterQuery(qr steward.QueryRouter) {
	NewCollectiveBucket().Register("collectives", qr)
}
