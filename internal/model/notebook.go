package model

import (
	"strings"
	"time"
)

// BulletSeparator joins notebook bullets in the stored content.
const BulletSeparator = "\n"

// NotebookEntry holds the bullet notes for one date. Content is the bullets
// joined by BulletSeparator; there is at most one entry per Date.
type NotebookEntry struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"theDate"`
	Content string    `json:"content"`
}

// Bullets splits Content back into its lines. Empty content yields nil.
func (e NotebookEntry) Bullets() []string {
	if e.Content == "" {
		return nil
	}
	return strings.Split(e.Content, BulletSeparator)
}

// JoinBullets drops blank bullets and joins the rest in order.
func JoinBullets(bullets []string) string {
	kept := make([]string, 0, len(bullets))
	for _, b := range bullets {
		if strings.TrimSpace(b) == "" {
			continue
		}
		kept = append(kept, b)
	}
	return strings.Join(kept, BulletSeparator)
}
