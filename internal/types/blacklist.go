package types

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistEntry is one employer a user has excluded from their search
// results. Entries are owned by exactly one user; lookups are always scoped
// to the owner.
type BlacklistEntry struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CompanyName string    `json:"company_name"`
	Reason      *string   `json:"reason,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}
