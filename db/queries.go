package db

import (
	"database/sql"
	"fmt"
	"time"
)

type ProvisionedTag struct {
	UID           string
	ComfortIndex  float64
	ProvisionedAt time.Time
}

func RecordProvisionedTag(conn *sql.DB, uid string, comfortIndex float64, at time.Time) error {
	_, err := conn.Exec(
		`INSERT INTO provisioned_tags (uid, comfort_index, provisioned_at) VALUES (?, ?, ?)`,
		uid, comfortIndex, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record provisioned tag %s: %w", uid, err)
	}
	return nil
}

func ListProvisionedTags(conn *sql.DB) ([]ProvisionedTag, error) {
	rows, err := conn.Query(`SELECT uid, comfort_index, provisioned_at FROM provisioned_tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query provisioned tags: %w", err)
	}
	defer rows.Close()

	var tags []ProvisionedTag
	for rows.Next() {
		var t ProvisionedTag
		var at string
		if err := rows.Scan(&t.UID, &t.ComfortIndex, &at); err != nil {
			return nil, fmt.Errorf("failed to scan provisioned tag: %w", err)
		}
		t.ProvisionedAt, _ = time.Parse(time.RFC3339, at)
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
