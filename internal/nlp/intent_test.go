package nlp

import (
	"testing"

	"github.com/themobileprof/listpilot/pkg/models"
)

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		expected models.Action
	}{
		{"plain add", "add milk", models.LangEnglish, models.ActionAdd},
		{"buy verb", "buy some eggs", models.LangEnglish, models.ActionAdd},
		{"multiword add", "pick up cheese", models.LangEnglish, models.ActionAdd},
		{"plain remove", "remove milk from the list", models.LangEnglish, models.ActionRemove},
		{"multiword remove", "take off the bread", models.LangEnglish, models.ActionRemove},
		{"modify", "change milk to 3", models.LangEnglish, models.ActionModify},
		{"search", "find cheap pasta", models.LangEnglish, models.ActionSearch},
		{"multiword search", "look for cheese", models.LangEnglish, models.ActionSearch},

		// Removal wins even when quantity words suggest add or modify.
		{"remove beats add", "remove 2 apples I need", models.LangEnglish, models.ActionRemove},
		{"remove beats modify", "delete and change milk", models.LangEnglish, models.ActionRemove},
		{"modify beats add", "change it, I need 3 apples", models.LangEnglish, models.ActionModify},

		// Negated adds downgrade to search, never mutate.
		{"negated add", "don't add milk", models.LangEnglish, models.ActionSearch},
		{"negated add spelled out", "do not add sugar", models.LangEnglish, models.ActionSearch},
		{"negated add spanish", "no agregues leche", models.LangSpanish, models.ActionSearch},

		// Question-like phrasing is not a command.
		{"how question", "how do I add milk", models.LangEnglish, models.ActionUnknown},
		{"recipe question", "recipe for pasta", models.LangEnglish, models.ActionUnknown},

		// A bare quantity plus noun is an implicit add.
		{"implicit add digits", "2 apples", models.LangEnglish, models.ActionAdd},
		{"implicit add word", "two apples", models.LangEnglish, models.ActionAdd},
		{"trailing number is not implicit", "apples 2", models.LangEnglish, models.ActionUnknown},

		{"spanish add", "agrega leche", models.LangSpanish, models.ActionAdd},
		{"spanish add with accent", "añade pan", models.LangSpanish, models.ActionAdd},
		{"spanish remove", "quita la leche", models.LangSpanish, models.ActionRemove},
		{"spanish modify", "cambia la leche a dos", models.LangSpanish, models.ActionModify},
		{"spanish search", "busca leche hasta 5", models.LangSpanish, models.ActionSearch},
		{"spanish implicit add", "dos manzanas", models.LangSpanish, models.ActionAdd},

		{"gibberish", "zzz qqq", models.LangEnglish, models.ActionUnknown},
		{"empty", "", models.LangEnglish, models.ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, _ := DetectIntent(Fold(tt.text), tt.language)
			if action != tt.expected {
				t.Errorf("DetectIntent(%q) = %s, expected %s", tt.text, action, tt.expected)
			}
		})
	}
}

func TestDetectIntentTrigger(t *testing.T) {
	action, trigger := DetectIntent("take off the milk", models.LangEnglish)
	if action != models.ActionRemove {
		t.Fatalf("Expected remove, got %s", action)
	}
	if trigger != "take off" {
		t.Errorf("Expected trigger %q, got %q", "take off", trigger)
	}

	// Implicit adds have no trigger phrase to excise.
	action, trigger = DetectIntent("two apples", models.LangEnglish)
	if action != models.ActionAdd {
		t.Fatalf("Expected add, got %s", action)
	}
	if trigger != "" {
		t.Errorf("Expected empty trigger for implicit add, got %q", trigger)
	}
}
