package bio

import (
	"errors"
	"reflect"
	"testing"
)

func TestSlot(t *testing.T) {
	tests := []struct {
		tag     string
		want    string
		wantOK  bool
		wantErr bool
	}{
		{"O", "", false, false},
		{"B-city", "city", true, false},
		{"I-city", "city", true, false},
		{"B-price_range", "price_range", true, false},
		{"B-", "", true, false},
		{"X-city", "", false, true},
		{"city", "", false, true},
		{"b-city", "", false, true},
		{"", "", false, true},
		{"I", "", false, true},
	}
	for _, tt := range tests {
		got, ok, err := Slot(tt.tag)
		if (err != nil) != tt.wantErr {
			t.Errorf("Slot(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrTagFormat) {
			t.Errorf("Slot(%q) error = %v, want ErrTagFormat", tt.tag, err)
		}
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Slot(%q) = %q, %v, want %q, %v", tt.tag, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSpans(t *testing.T) {
	tests := []struct {
		tags []string
		want []Span
	}{
		{nil, nil},
		{[]string{"O", "O", "O"}, nil},
		// One span opened by B- and extended by I-.
		{[]string{"O", "O", "B-city", "I-city"}, []Span{{"city", 2, 2}}},
		// A lone I- tag opens a span too.
		{[]string{"O", "I-city", "O"}, []Span{{"city", 1, 1}}},
		// A fresh B- closes the running span.
		{[]string{"B-city", "B-city"}, []Span{{"city", 0, 1}, {"city", 1, 1}}},
		// An I- for a different slot closes the running span.
		{[]string{"B-city", "I-food"}, []Span{{"city", 0, 1}, {"food", 1, 1}}},
		{
			[]string{"B-food", "I-food", "I-food", "O", "B-area"},
			[]Span{{"food", 0, 3}, {"area", 4, 1}},
		},
	}
	for _, tt := range tests {
		got, err := Spans(tt.tags)
		if err != nil {
			t.Errorf("Spans(%v) error = %v", tt.tags, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Spans(%v) = %v, want %v", tt.tags, got, tt.want)
		}
	}
}

func TestSpansTagFormat(t *testing.T) {
	_, err := Spans([]string{"O", "X-city", "O"})
	if !errors.Is(err, ErrTagFormat) {
		t.Errorf("Spans with malformed tag: error = %v, want ErrTagFormat", err)
	}
}

func TestDelexicalize(t *testing.T) {
	tests := []struct {
		tokens []string
		tags   []string
		want   []string
	}{
		{
			[]string{"I", "want", "Paris", "Texas"},
			[]string{"O", "O", "B-city", "I-city"},
			[]string{"I", "want", "#city", "#city"},
		},
		{
			[]string{"hello", "there"},
			[]string{"O", "O"},
			[]string{"hello", "there"},
		},
		{
			[]string{"cheap", "thai", "food"},
			[]string{"B-price", "B-food", "I-food"},
			[]string{"#price", "#food", "#food"},
		},
		{nil, nil, []string{}},
	}
	for _, tt := range tests {
		got, err := Delexicalize(tt.tokens, tt.tags)
		if err != nil {
			t.Errorf("Delexicalize(%v, %v) error = %v", tt.tokens, tt.tags, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Delexicalize(%v, %v) = %v, want %v", tt.tokens, tt.tags, got, tt.want)
		}
		if len(got) != len(tt.tokens) {
			t.Errorf("Delexicalize changed length: %d tokens in, %d out", len(tt.tokens), len(got))
		}
	}
}

func TestDelexicalizeErrors(t *testing.T) {
	if _, err := Delexicalize([]string{"a", "b"}, []string{"O"}); err == nil {
		t.Error("Delexicalize with mismatched lengths: expected error")
	}
	_, err := Delexicalize([]string{"a"}, []string{"BAD"})
	if !errors.Is(err, ErrTagFormat) {
		t.Errorf("Delexicalize with malformed tag: error = %v, want ErrTagFormat", err)
	}
}

func TestDelexicalizeBatch(t *testing.T) {
	tokens := [][]string{
		{"I", "want", "Paris", "Texas"},
		{"any", "food"},
	}
	tags := [][]string{
		{"O", "O", "B-city", "I-city"},
		{"O", "B-food"},
	}
	want := [][]string{
		{"I", "want", "#city", "#city"},
		{"any", "#food"},
	}
	got, err := DelexicalizeBatch(tokens, tags)
	if err != nil {
		t.Fatalf("DelexicalizeBatch error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DelexicalizeBatch = %v, want %v", got, want)
	}

	if _, err := DelexicalizeBatch(tokens, tags[:1]); err == nil {
		t.Error("DelexicalizeBatch with mismatched batch lengths: expected error")
	}
}
