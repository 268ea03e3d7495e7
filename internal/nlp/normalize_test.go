package nlp

import (
	"reflect"
	"testing"

	"github.com/themobileprof/listpilot/pkg/models"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Añade", "anade"},
		{"LECHE", "leche"},
		{"café", "cafe"},
		{"plátano", "platano"},
		{"milk", "milk"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.input); got != tt.expected {
			t.Errorf("Fold(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Add 2 apples!", []string{"add", "2", "apples"}},
		{"under $4.99", []string{"under", "4.99"}},
		{"gluten-free bread", []string{"gluten-free", "bread"}},
		{"don't add milk", []string{"don", "t", "add", "milk"}},
		{"...", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestSingularize(t *testing.T) {
	tests := []struct {
		word     string
		language string
		expected string
	}{
		{"apples", models.LangEnglish, "apple"},
		{"berries", models.LangEnglish, "berry"},
		{"boxes", models.LangEnglish, "box"},
		{"glass", models.LangEnglish, "glass"},
		{"milk", models.LangEnglish, "milk"},
		{"gas", models.LangEnglish, "gas"}, // too short to touch
		{"manzanas", models.LangSpanish, "manzana"},
		{"pan", models.LangSpanish, "pan"},
	}

	for _, tt := range tests {
		if got := Singularize(tt.word, tt.language); got != tt.expected {
			t.Errorf("Singularize(%q, %s) = %q, expected %q", tt.word, tt.language, got, tt.expected)
		}
	}
}

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		input    string
		language string
		expected string
	}{
		{"  Whole   Milk ", models.LangEnglish, "whole milk"},
		{"green apples", models.LangEnglish, "green apple"},
		{"Leches", models.LangSpanish, "leche"},
		{"", models.LangEnglish, ""},
	}

	for _, tt := range tests {
		if got := CanonicalName(tt.input, tt.language); got != tt.expected {
			t.Errorf("CanonicalName(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestStem(t *testing.T) {
	// Stems are lookup keys only, so equality of related forms is the
	// property that matters.
	if Stem("apples", models.LangEnglish) != Stem("apple", models.LangEnglish) {
		t.Error("Expected apples and apple to share a stem")
	}
	if Stem("manzanas", models.LangSpanish) != Stem("manzana", models.LangSpanish) {
		t.Error("Expected manzanas and manzana to share a stem")
	}
}
