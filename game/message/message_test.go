package message

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/minseo-kang/wordgrid/game"
)

func TestFromClient(t *testing.T) {
	fromClientTests := []struct {
		t    Type
		want bool
	}{
		{t: Place, want: true},
		{t: Chat, want: true},
		{t: StartGame, want: true},
		{t: Update},
		{t: Init},
		{t: "BOGUS"},
		{t: ""},
	}
	for i, test := range fromClientTests {
		if got := test.t.FromClient(); got != test.want {
			t.Errorf("Test %v: wanted FromClient(%q) = %v, got %v", i, test.t, test.want, got)
		}
	}
}

func TestMessageJSONOmitsUnusedFields(t *testing.T) {
	m := Message{
		Type:    Chat,
		Message: "hello",
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	got := string(b)
	if strings.Contains(got, "state") || strings.Contains(got, "hand_index") {
		t.Errorf("wanted unused fields omitted, got %v", got)
	}
}

func TestMessageJSONZeroTimeEncoded(t *testing.T) {
	rem := 0
	m := Message{
		Type: TimerTick,
		Time: &rem,
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if !strings.Contains(string(b), `"time":0`) {
		t.Errorf("wanted final zero tick encoded, got %v", string(b))
	}
}

func TestMessageRoundTrip(t *testing.T) {
	handIndex := 3
	m := Message{
		Type:      Place,
		X:         -2,
		Y:         7,
		Letter:    "Q",
		Color:     "#e6194b",
		HandIndex: &handIndex,
		Settings: &game.Settings{
			Lang:       game.Korean,
			Mode:       game.Blitz,
			MaxPlayers: 4,
		},
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	var got Message
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	switch {
	case got.Type != m.Type, got.X != m.X, got.Y != m.Y, got.Letter != m.Letter:
		t.Errorf("wanted %+v, got %+v", m, got)
	case got.HandIndex == nil || *got.HandIndex != handIndex:
		t.Errorf("wanted hand index %v, got %v", handIndex, got.HandIndex)
	case got.Settings == nil || *got.Settings != *m.Settings:
		t.Errorf("wanted settings %+v, got %+v", m.Settings, got.Settings)
	}
}
