package internal

import "testing"

func TestRecordDisplayDefaults(t *testing.T) {
	r := Record{Fields: map[Field]string{FieldTitle: "  ", FieldOverflow: ""}}
	if got := r.DisplayTitle(); got != UntitledLabel {
		t.Fatalf("title=%q", got)
	}
	if got := r.DisplayAuthor(); got != UnknownAuthorLabel {
		t.Fatalf("author=%q", got)
	}

	r.Fields[FieldAuthor] = "Cajal"
	if got := r.DisplayAuthor(); got != "Cajal" {
		t.Fatalf("author=%q", got)
	}
}

func TestRecordExtraKeys(t *testing.T) {
	r := Record{Fields: map[Field]string{
		FieldTitle:     "x",
		"n_registro":   "1",
		FieldOverflow:  "",
		FieldPublisher: "y",
	}}
	got := r.ExtraKeys()
	if len(got) != 2 || got[0] != "n_registro" || got[1] != FieldOverflow {
		t.Fatalf("keys=%v", got)
	}
}
