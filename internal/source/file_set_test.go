package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("out.txt", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("out.txt", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("out.txt")
	if !exists {
		t.Fatal("Expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("Expected first file content to be 'hello world', got %q", got)
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty", content: "", want: []string{}},
		{name: "single newline", content: "\n", want: []string{""}},
		{name: "trailing newline", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", content: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines kept", content: "a\n\n\nb\n", want: []string{"a", "", "", "b"}},
		{name: "crlf", content: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "lone cr kept", content: "a\rb\n", want: []string{"a\rb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewFileSet()
			f := fs.Get(fs.AddVirtual("x", []byte(tt.content)))
			got := f.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Lines() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Lines()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
			if f.LineCount() != len(tt.want) {
				t.Fatalf("LineCount() = %d, want %d", f.LineCount(), len(tt.want))
			}
		})
	}
}

func TestAddVirtualFlags(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cpp", []byte{0xEF, 0xBB, 0xBF, 'x', '\r', '\n'})
	file := fs.Get(id)

	if string(file.Content) != "x\n" {
		t.Fatalf("Expected normalized content %q, got %q", "x\n", file.Content)
	}
	for _, flag := range []FileFlags{FileVirtual, FileHadBOM, FileNormalizedCRLF} {
		if file.Flags&flag == 0 {
			t.Errorf("Expected flag %d to be set, got %b", flag, file.Flags)
		}
	}
	if file.Flags&FileNormalizedNFC != 0 {
		t.Error("NFC flag must not be set when normalization is off")
	}
}

func TestNFCNormalization(t *testing.T) {
	decomposed := []byte("e\u0301\n")
	composed := "\u00e9\n"

	fs := NewFileSet()
	raw := fs.Get(fs.AddVirtual("raw", decomposed))
	if string(raw.Content) == composed {
		t.Fatal("content must stay untouched without normalization")
	}

	fs.SetNormalization(NormNFC)
	nfc := fs.Get(fs.AddVirtual("nfc", decomposed))
	if string(nfc.Content) != composed {
		t.Fatalf("Expected NFC content %q, got %q", composed, nfc.Content)
	}
	if nfc.Flags&FileNormalizedNFC == 0 {
		t.Error("Expected FileNormalizedNFC flag")
	}
}

func TestParseNormalization(t *testing.T) {
	for value, want := range map[string]Normalization{"": NormNone, "none": NormNone, "nfc": NormNFC} {
		got, ok := ParseNormalization(value)
		if !ok || got != want {
			t.Errorf("ParseNormalization(%q) = %v, %v; want %v", value, got, ok, want)
		}
	}
	if _, ok := ParseNormalization("nfkd"); ok {
		t.Error("nfkd must be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if fs.Len() != 0 {
		t.Fatalf("failed load must not add a file, have %d", fs.Len())
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := f.Lines(); len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("unexpected lines %q", got)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
}

func TestResolveAndGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cpp", []byte("ab\ncd\nef"))
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{7, LineCol{Line: 3, Col: 2}},
	}
	for _, c := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: c.off, End: c.off})
		if start != c.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", c.off, start, c.want)
		}
	}

	for line, want := range map[uint32]string{0: "", 1: "ab", 2: "cd", 3: "ef", 4: ""} {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}

	sp, ok := f.LineSpan(2)
	if !ok || sp.Start != 3 || sp.End != 5 {
		t.Fatalf("LineSpan(2) = %v, %v", sp, ok)
	}
}

// TestResolveUTF8 проверяет разрешение позиций в UTF-8 тексте
func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.cpp", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("Expected start 1:1, got %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("Expected end 1:2, got %+v", end)
	}
}
