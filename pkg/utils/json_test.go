package utils

import (
	"testing"
)

func TestUnmarshal(t *testing.T) {
	type payload struct {
		ID     string `json:"id"`
		Amount string `json:"amount"`
	}

	got, err := Unmarshal[payload]([]byte(`{"id":"p1","amount":"10.50"}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "p1" || got.Amount != "10.50" {
		t.Fatalf("want p1/10.50, got %+v", got)
	}

	if _, err := Unmarshal[payload]([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMustMarshal(t *testing.T) {
	m := MustMarshal(map[string]string{"k": "v"})
	if string(m) != `{"k":"v"}` {
		t.Fatalf("unexpected output: %s", m)
	}
}
