package resources

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/textpress"
	"github.com/npillmayer/textpress/bytepack"
)

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("cannot write fixture %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	var table bytes.Buffer
	if _, err := bytepack.DefaultTable().WriteTo(&table); err != nil {
		t.Fatal(err)
	}
	conf := testconfig.Conf{
		KeyWordList:   writeFixture(t, dir, "words.txt", []byte("the\t100\ncat\t50\nsat\t10\n.\t5\n")),
		KeyNgrams:     writeFixture(t, dir, "ngrams.txt", []byte("x01x02x03\n")),
		KeyFinalTable: writeFixture(t, dir, "final.tpfh", table.Bytes()),
	}
	res, err := Load(conf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Dictionary.Len() != 5 {
		t.Fatalf("dictionary has %d ids, want 5", res.Dictionary.Len())
	}
	if res.Ngrams.Len() != 1 {
		t.Fatalf("n-gram table has %d rows, want 1", res.Ngrams.Len())
	}
	if res.Table == nil || res.Table.Weight(0) != bytepack.DefaultTable().Weight(0) {
		t.Fatal("final table not loaded")
	}
	if res.Layout != textpress.DefaultLayout() {
		t.Fatalf("layout is %+v", res.Layout)
	}
	p, err := res.Pipeline(conf)
	if err != nil {
		t.Fatal(err)
	}
	packed, err := p.Compress([]byte("The cat sat."))
	if err != nil {
		t.Fatal(err)
	}
	text, err := p.Decompress(packed)
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "The cat sat. " {
		t.Fatalf("round trip is %q", text)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(testconfig.Conf{}); err == nil {
		t.Fatal("expected error without word list")
	}
	conf := testconfig.Conf{KeyWordList: filepath.Join(t.TempDir(), "missing.txt")}
	if _, err := Load(conf); err == nil {
		t.Fatal("expected error for missing word list")
	}
	conf = testconfig.Conf{KeyWordList: "words.txt", "layout.escapes": 2}
	if _, err := Load(conf); err == nil {
		t.Fatal("expected error for invalid layout")
	}
}

func TestFromReaders(t *testing.T) {
	res, err := FromReaders(textpress.DefaultLayout(), strings.NewReader("a\nb\n"), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ngrams != nil || res.Table != nil {
		t.Fatal("optional resources should stay nil")
	}
	p, err := res.Pipeline(testconfig.Conf{KeyRawEscapes: true, KeyNgramPass: false})
	if err != nil {
		t.Fatal(err)
	}
	packed, err := p.Compress([]byte("a b zzz"))
	if err != nil {
		t.Fatal(err)
	}
	text, err := p.Decompress(packed)
	if err != nil {
		t.Fatal(err)
	}
	if string(text) != "A b zzz " {
		t.Fatalf("round trip is %q", text)
	}
}
