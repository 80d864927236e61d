package model

import "time"

// Task is a single to-do item.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
}

// Goal has the same shape as Task but lives in its own collection.
type Goal struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Complete    bool      `json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
}

// Quote is a saved quotation. Quotes have no completion concept.
type Quote struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Author    string    `json:"author"`
	Quote     string    `json:"quote"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is an entry on the reading list.
type Book struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id,omitempty"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Genre     string    `json:"genre"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"created_at"`
}

// Stampable is implemented by record pointers so identity fields are
// assigned in exactly one place at creation. Whatever the submission
// claimed for owner or creation time is overwritten here.
type Stampable interface {
	Stamp(id, owner string, createdAt time.Time)
}

func (t *Task) Stamp(id, owner string, createdAt time.Time) {
	t.ID, t.OwnerID, t.CreatedAt = id, owner, createdAt
}

func (g *Goal) Stamp(id, owner string, createdAt time.Time) {
	g.ID, g.OwnerID, g.CreatedAt = id, owner, createdAt
}

func (q *Quote) Stamp(id, owner string, createdAt time.Time) {
	q.ID, q.OwnerID, q.CreatedAt = id, owner, createdAt
}

func (b *Book) Stamp(id, owner string, createdAt time.Time) {
	b.ID, b.OwnerID, b.CreatedAt = id, owner, createdAt
}

// ListPage is the list view handed to the presentation layer. SearchInput
// echoes the raw filter text so a search box can be repopulated. Count is
// the number of incomplete records in the unfiltered owned set; it is nil
// for kinds without a completion flag.
type ListPage[T any] struct {
	Items       []T    `json:"items"`
	SearchInput string `json:"search_input"`
	Count       *int   `json:"count,omitempty"`
}
