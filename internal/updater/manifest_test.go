package updater

import (
	"testing"
)

func TestDecodeManifest(t *testing.T) {
	data := []byte(`{
  "version": "1.4.0",
  "channel": "stable",
  "builds": [
    {"os": "linux", "arch": "amd64", "full": {"url": "https://example.com/full", "sha256": "abcd"}}
  ]
}`)
	m, err := DecodeManifest(data)
	if err != nil {
		t.Fatalf("DecodeManifest: %v", err)
	}
	if m.Version != "1.4.0" {
		t.Fatalf("version = %q", m.Version)
	}
	build, ok := m.BuildFor("LINUX", "AMD64")
	if !ok {
		t.Fatal("expected a case-insensitive platform match")
	}
	if build.Full.URL != "https://example.com/full" {
		t.Fatalf("full url = %q", build.Full.URL)
	}
	if _, ok := m.BuildFor("darwin", "arm64"); ok {
		t.Fatal("unexpected match for a missing platform")
	}
}

func TestDecodeManifestRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing version", `{"channel": "stable", "builds": [{"os": "linux", "arch": "amd64"}]}`},
		{"missing builds", `{"version": "1.0.0", "channel": "stable"}`},
		{"malformed json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeManifest([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeHex(t *testing.T) {
	if _, err := DecodeHex(""); err == nil {
		t.Error("expected an error for an empty checksum")
	}
	if _, err := DecodeHex("zz"); err == nil {
		t.Error("expected an error for non-hex input")
	}
	got, err := DecodeHex(" 00ff ")
	if err != nil {
		t.Fatalf("DecodeHex: %v", err)
	}
	if len(got) != 2 || got[0] != 0x00 || got[1] != 0xff {
		t.Fatalf("DecodeHex = %v", got)
	}
}
