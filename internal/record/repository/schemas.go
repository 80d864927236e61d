package repository

import (
	"database/sql"

	"lifehub/internal/record/model"
)

// The four kind declarations. Text columns are nullable in the store to
// tolerate legacy rows, so they scan through sql.NullString.

func TaskSchema() Schema[model.Task] {
	return Schema[model.Task]{
		Table:           "tasks",
		Columns:         []string{"id", "owner_id", "title", "description", "complete", "created_at"},
		Editable:        []string{"title", "description", "complete"},
		SearchColumn:    "title",
		HasComplete:     true,
		OrderByComplete: true,
		Scan: func(row rowScanner) (model.Task, error) {
			var t model.Task
			var owner, title, desc sql.NullString
			if err := row.Scan(&t.ID, &owner, &title, &desc, &t.Complete, &t.CreatedAt); err != nil {
				return t, err
			}
			t.OwnerID, t.Title, t.Description = owner.String, title.String, desc.String
			return t, nil
		},
		Values: func(t model.Task) []any {
			return []any{t.ID, nullable(t.OwnerID), t.Title, t.Description, t.Complete, t.CreatedAt}
		},
		EditableValues: func(t model.Task) []any {
			return []any{t.Title, t.Description, t.Complete}
		},
	}
}

func GoalSchema() Schema[model.Goal] {
	return Schema[model.Goal]{
		Table:           "goals",
		Columns:         []string{"id", "owner_id", "title", "description", "complete", "created_at"},
		Editable:        []string{"title", "description", "complete"},
		SearchColumn:    "title",
		HasComplete:     true,
		OrderByComplete: true,
		Scan: func(row rowScanner) (model.Goal, error) {
			var g model.Goal
			var owner, title, desc sql.NullString
			if err := row.Scan(&g.ID, &owner, &title, &desc, &g.Complete, &g.CreatedAt); err != nil {
				return g, err
			}
			g.OwnerID, g.Title, g.Description = owner.String, title.String, desc.String
			return g, nil
		},
		Values: func(g model.Goal) []any {
			return []any{g.ID, nullable(g.OwnerID), g.Title, g.Description, g.Complete, g.CreatedAt}
		},
		EditableValues: func(g model.Goal) []any {
			return []any{g.Title, g.Description, g.Complete}
		},
	}
}

func QuoteSchema() Schema[model.Quote] {
	return Schema[model.Quote]{
		Table:        "quotes",
		Columns:      []string{"id", "owner_id", "author", "quote", "category", "created_at"},
		Editable:     []string{"author", "quote", "category"},
		SearchColumn: "category",
		HasComplete:  false,
		Scan: func(row rowScanner) (model.Quote, error) {
			var q model.Quote
			var owner, author, quote, category sql.NullString
			if err := row.Scan(&q.ID, &owner, &author, &quote, &category, &q.CreatedAt); err != nil {
				return q, err
			}
			q.OwnerID, q.Author, q.Quote, q.Category = owner.String, author.String, quote.String, category.String
			return q, nil
		},
		Values: func(q model.Quote) []any {
			return []any{q.ID, nullable(q.OwnerID), q.Author, q.Quote, q.Category, q.CreatedAt}
		},
		EditableValues: func(q model.Quote) []any {
			return []any{q.Author, q.Quote, q.Category}
		},
	}
}

func BookSchema() Schema[model.Book] {
	// Books carry a completion flag for the unread count but list in
	// insertion order, unlike tasks and goals.
	return Schema[model.Book]{
		Table:        "books",
		Columns:      []string{"id", "owner_id", "author", "title", "genre", "complete", "created_at"},
		Editable:     []string{"author", "title", "genre", "complete"},
		SearchColumn: "title",
		HasComplete:  true,
		Scan: func(row rowScanner) (model.Book, error) {
			var b model.Book
			var owner, author, title, genre sql.NullString
			if err := row.Scan(&b.ID, &owner, &author, &title, &genre, &b.Complete, &b.CreatedAt); err != nil {
				return b, err
			}
			b.OwnerID, b.Author, b.Title, b.Genre = owner.String, author.String, title.String, genre.String
			return b, nil
		},
		Values: func(b model.Book) []any {
			return []any{b.ID, nullable(b.OwnerID), b.Author, b.Title, b.Genre, b.Complete, b.CreatedAt}
		},
		EditableValues: func(b model.Book) []any {
			return []any{b.Author, b.Title, b.Genre, b.Complete}
		},
	}
}

// nullable maps an empty owner to SQL NULL so the FK stays satisfiable.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
