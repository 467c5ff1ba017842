package deck

import (
	"encoding/json"
	"testing"
)

func TestCardString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "10♥"},
		{NewCard(Two, Clubs), "2♣"},
		{NewCard(Queen, Diamonds), "Q♦"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"A♠", "10♥", "2♣", "K♦", "J♠"} {
		card, err := ParseCard(s)
		if err != nil {
			t.Fatalf("ParseCard(%q) error: %v", s, err)
		}
		if card.String() != s {
			t.Errorf("round trip %q -> %q", s, card.String())
		}
	}

	for _, s := range []string{"", "A", "♠", "1♠", "11♥", "AS", "A♠♠"} {
		if _, err := ParseCard(s); err == nil {
			t.Errorf("ParseCard(%q) should fail", s)
		}
	}
}

func TestCardJSON(t *testing.T) {
	t.Parallel()

	card := NewCard(Ten, Diamonds)
	data, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"10♦"` {
		t.Errorf("marshal = %s, want %q", data, `"10♦"`)
	}

	var decoded Card
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != card {
		t.Errorf("round trip %v -> %v", card, decoded)
	}
}
