package bind

import (
	"testing"

	perr "cinebot/internal/platform/errors"
)

type ref struct {
	Type string `json:"media_type" validate:"required,oneof=movie series"`
	ID   int64  `json:"item_id" validate:"gte=0"`
}

type input struct {
	OwnerID int64  `json:"owner_id" validate:"required"`
	Query   string `json:"query,omitempty" validate:"max=5"`
	Ref     ref    `json:"ref"`
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := input{OwnerID: 1, Query: "dune", Ref: ref{Type: "movie", ID: 7}}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid input: %v", err)
	}

	cases := []struct {
		name  string
		in    input
		field string
		msg   string
	}{
		{"required", input{Ref: ok.Ref}, "owner_id", "owner_id is a required field"},
		{"max", input{OwnerID: 1, Query: "inception", Ref: ok.Ref}, "query", "query must be at most 5"},
		{"oneof", input{OwnerID: 1, Ref: ref{Type: "person"}}, "media_type", "media_type must be one of [movie series]"},
		{"gte", input{OwnerID: 1, Ref: ref{Type: "series", ID: -1}}, "item_id", "item_id must be at least 0"},
	}
	for _, c := range cases {
		err := Validate(c.in)
		e, isErr := perr.As(err)
		if !isErr || e.Code() != perr.ErrorCodeValidation {
			t.Fatalf("%s: want validation error, got %v", c.name, err)
		}
		if e.Field() != c.field || e.Error() != c.msg {
			t.Fatalf("%s: field=%q msg=%q", c.name, e.Field(), e.Error())
		}
	}
}

func TestValidate_NonStruct(t *testing.T) {
	t.Parallel()

	if err := Validate(42); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestFieldAndMessage_Plain(t *testing.T) {
	t.Parallel()

	if f, m := FieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil = %q %q", f, m)
	}
}
