package model

import (
	"net/url"
	"strconv"
)

// Forms mirror what the presentation layer submits. Each kind declares its
// editable field set explicitly; owner and creation time never appear here,
// so read-only fields echoed back by a form submission are dropped on the
// floor rather than rejected.

type TaskForm struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

func (f *TaskForm) FromValues(v url.Values) {
	f.Title = v.Get("title")
	f.Description = v.Get("description")
	f.Complete = formBool(v.Get("complete"))
}

type GoalForm struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description"`
	Complete    bool   `json:"complete"`
}

func (f *GoalForm) FromValues(v url.Values) {
	f.Title = v.Get("title")
	f.Description = v.Get("description")
	f.Complete = formBool(v.Get("complete"))
}

type QuoteForm struct {
	Author   string `json:"author" validate:"max=30"`
	Quote    string `json:"quote"`
	Category string `json:"category"`
}

func (f *QuoteForm) FromValues(v url.Values) {
	f.Author = v.Get("author")
	f.Quote = v.Get("quote")
	f.Category = v.Get("category")
}

// BookCreateForm deliberately has no complete field: a book always starts
// unread, whatever the submission claims.
type BookCreateForm struct {
	Author string `json:"author" validate:"max=30"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
}

func (f *BookCreateForm) FromValues(v url.Values) {
	f.Author = v.Get("author")
	f.Title = v.Get("title")
	f.Genre = v.Get("genre")
}

// BookUpdateForm adds complete so a finished book can be marked as such.
type BookUpdateForm struct {
	Author   string `json:"author" validate:"max=30"`
	Title    string `json:"title"`
	Genre    string `json:"genre"`
	Complete bool   `json:"complete"`
}

func (f *BookUpdateForm) FromValues(v url.Values) {
	f.Author = v.Get("author")
	f.Title = v.Get("title")
	f.Genre = v.Get("genre")
	f.Complete = formBool(v.Get("complete"))
}

// formBool treats checkbox-style values ("on") and the usual boolean
// spellings as true.
func formBool(s string) bool {
	if s == "on" {
		return true
	}
	b, err := strconv.ParseBool(s)
	return err == nil && b
}
