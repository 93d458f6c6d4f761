package netstate_test

import (
	"testing"

	"github.com/tpdc055/sheriff/internal/netstate"
)

func TestSetFiresListenersOnChangeOnly(t *testing.T) {
	sig := netstate.New(true)
	var seen []bool
	sig.OnChange(func(online bool) { seen = append(seen, online) })

	sig.Set(true) // no transition
	sig.Set(false)
	sig.Set(false) // no transition
	sig.Set(true)

	if len(seen) != 2 || seen[0] != false || seen[1] != true {
		t.Fatalf("unexpected transitions %v", seen)
	}
	if !sig.IsOnline() {
		t.Fatal("expected online")
	}
}

func TestInitialState(t *testing.T) {
	if netstate.New(false).IsOnline() {
		t.Fatal("expected offline")
	}
	if !netstate.New(true).IsOnline() {
		t.Fatal("expected online")
	}
}
