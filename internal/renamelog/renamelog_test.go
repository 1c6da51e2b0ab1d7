package renamelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rename.log")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record("2019_09_10_16_21_56", "/a/x.txt", "/a/y.txt"); err != nil {
		t.Fatal(err)
	}
	log.Close()

	// Second open must append, not rewrite the header.
	log, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record("2019_09_10_16_21_57", "/a/b.txt", "/a/c.txt"); err != nil {
		t.Fatal(err)
	}
	log.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)

	if strings.Count(content, "Timestamp, Origianl file, Renamed file") != 1 {
		t.Errorf("header not written exactly once:\n%s", content)
	}
	if !strings.Contains(content, "2019_09_10_16_21_56, /a/x.txt, /a/y.txt\n\n") {
		t.Errorf("first record missing:\n%s", content)
	}
	if !strings.Contains(content, "2019_09_10_16_21_57, /a/b.txt, /a/c.txt\n\n") {
		t.Errorf("second record missing:\n%s", content)
	}
}

func TestOpen_HeaderFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rename.log")
	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Close()

	data, _ := os.ReadFile(path)
	want := "Timestamp, Origianl file, Renamed file\n" +
		"----------------------------------------\n"
	if string(data) != want {
		t.Errorf("header: got %q, want %q", string(data), want)
	}
}
