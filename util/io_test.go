package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type json_test struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

func TestJSONRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "value.json")

	want := json_test{Name: "test", Count: 3, Score: 1.5}
	if err := WriteJSONToFile(want, file); err != nil {
		t.Fatalf("WriteJSONToFile failed: %v", err)
	}
	got, err := ReadJSONFromFile[json_test](file)
	if err != nil {
		t.Fatalf("ReadJSONFromFile failed: %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v; want %+v", got, want)
	}
}

func TestJSONMissingFile(t *testing.T) {
	_, err := ReadJSONFromFile[json_test](filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v; want os.ErrNotExist", err)
	}
}
