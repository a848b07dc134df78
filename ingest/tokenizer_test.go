package ingest

import (
	"reflect"
	"testing"
)

func TestRowsBasic(t *testing.T) {
	got := Rows("a,b,c\n1,2,3")
	want := [][]string{{"a", "b", "c"}, {"1", "2", "3"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows = %v, want %v", got, want)
	}
}

func TestRowsQuotedFields(t *testing.T) {
	got := Rows(`"a,b",c` + "\n" + `"line` + "\n" + `break",d`)
	want := [][]string{{"a,b", "c"}, {"line\nbreak", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows = %v, want %v", got, want)
	}
}

func TestRowsEscapedQuote(t *testing.T) {
	got := Rows(`"he said ""hi""",x`)
	want := [][]string{{`he said "hi"`, "x"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows = %v, want %v", got, want)
	}
}

func TestRowsCRLFAndTrailing(t *testing.T) {
	got := Rows("a,b\r\nc,d\r\n")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows = %v, want %v", got, want)
	}
}

func TestRowsRagged(t *testing.T) {
	got := Rows("a\nb,c,d")
	want := [][]string{{"a"}, {"b", "c", "d"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows = %v, want %v", got, want)
	}
}

func TestRowsEmpty(t *testing.T) {
	if got := Rows(""); len(got) != 0 {
		t.Fatalf("Rows(\"\") = %v", got)
	}
}
