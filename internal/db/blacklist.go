package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mgarcia/jobscout/internal/types"
)

// ListBlacklist retrieves every blacklist entry owned by ownerID, newest
// first. The core exclusion filter only ever reads through this method, so
// one user's blacklist can never leak into another's results.
func (db *DB) ListBlacklist(ctx context.Context, ownerID uuid.UUID) ([]types.BlacklistEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, owner_id, company_name, reason, added_at
		 FROM blacklisted_companies
		 WHERE owner_id = $1
		 ORDER BY added_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list blacklist: %w", err)
	}
	defer rows.Close()

	var entries []types.BlacklistEntry
	for rows.Next() {
		var entry types.BlacklistEntry
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.CompanyName, &entry.Reason, &entry.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan blacklist entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AddBlacklistEntry records a company on the owner's blacklist.
func (db *DB) AddBlacklistEntry(ctx context.Context, ownerID uuid.UUID, companyName string, reason *string) (*types.BlacklistEntry, error) {
	var entry types.BlacklistEntry
	err := db.pool.QueryRow(ctx,
		`INSERT INTO blacklisted_companies (owner_id, company_name, reason)
		 VALUES ($1, $2, $3)
		 RETURNING id, owner_id, company_name, reason, added_at`,
		ownerID, companyName, reason,
	).Scan(&entry.ID, &entry.OwnerID, &entry.CompanyName, &entry.Reason, &entry.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add blacklist entry: %w", err)
	}
	return &entry, nil
}

// DeleteBlacklistEntry removes one entry, scoped to the owner so users
// cannot delete each other's entries. Returns an error when nothing matched.
func (db *DB) DeleteBlacklistEntry(ctx context.Context, ownerID, entryID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM blacklisted_companies WHERE id = $1 AND owner_id = $2`,
		entryID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete blacklist entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("blacklist entry not found: %s", entryID)
	}
	return nil
}
