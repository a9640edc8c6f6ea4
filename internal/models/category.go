package models

import "time"

// Category groups products inside the catalog.
// Categories are soft-deleted: removed rows keep their identity so that
// historical product references stay resolvable.
type Category struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Products   []Product  `json:"products,omitempty"`
	IsDeleted  bool       `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	CreatedBy  string     `json:"created_by,omitempty"`
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	ModifiedBy *string    `json:"modified_by,omitempty"`
}
