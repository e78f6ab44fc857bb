package polis_test

import (
	"testing"

	"github.com/playperu/polis/internal/polis"
	"github.com/playperu/polis/internal/polis/polistest"
)

func TestFormatHistory(t *testing.T) {
	g := polistest.Game()
	g.Events = []polis.Event{
		{Turn: 3, Year: 448, Title: "Economic Boom", Description: "Your economy is thriving."},
		{Turn: 2, Year: 449, Title: "War Declared", Description: "You have declared war on Sparta."},
		{Turn: 1, Year: 450, Title: "Structure Built", Description: "You have built a new Agora."},
		{Turn: 1, Year: 450, Title: "City State Founded", Description: "Founded."},
	}

	want := "HISTORY OF ATHENS\n\n" +
		"--- 450 BCE ---\n\n" +
		"[Turn 1] Structure Built\nYou have built a new Agora.\n\n" +
		"[Turn 1] City State Founded\nFounded.\n\n" +
		"--- 449 BCE ---\n\n" +
		"[Turn 2] War Declared\nYou have declared war on Sparta.\n\n" +
		"--- 448 BCE ---\n\n" +
		"[Turn 3] Economic Boom\nYour economy is thriving.\n\n"

	if got := polis.FormatHistory(g); got != want {
		t.Errorf("unexpected history:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatHistoryEmpty(t *testing.T) {
	if got := polis.FormatHistory(polistest.Game()); got != "HISTORY OF ATHENS\n\n" {
		t.Errorf("unexpected history %q", got)
	}
}
