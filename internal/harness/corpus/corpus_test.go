package corpus_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"skharness/internal/harness/corpus"
)

func TestDefault(t *testing.T) {
	want := []string{
		"print(2 * 2)", "print(2 - 2)", "print(2 / 2)", "print(2 * 2)", "print(2 % 2)",
		"print(2 < 2)", "print(2 > 2)", "print(2 <= 2)", "print(2 >= 2)",
		"print(2 == 2)", "print(2 != 2)",
	}
	if got := corpus.Default().Snippets(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected default corpus: %v", got)
	}
}

func TestSnippetsReturnsCopy(t *testing.T) {
	list := corpus.List{"print(1)"}
	got := list.Snippets()
	got[0] = "mutated"
	if list[0] != "print(1)" {
		t.Fatalf("corpus was mutated through Snippets")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")
	body := "snippets:\n  - print(2 * 2)\n  - \"print(2 / 0)\"\n  - 'print(\"hi\")'\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	list, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := corpus.List{"print(2 * 2)", "print(2 / 0)", `print("hi")`}
	if !reflect.DeepEqual(list, want) {
		t.Fatalf("got %v, want %v", list, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("snippets: []\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("snippets: [\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, path := range []string{empty, broken, filepath.Join(dir, "missing.yaml")} {
		if _, err := corpus.Load(path); err == nil {
			t.Fatalf("expected error for %s", filepath.Base(path))
		}
	}
}
