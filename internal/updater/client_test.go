package updater

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/kr/binarydist"
)

type updateServer struct {
	server       *httptest.Server
	fullData     []byte
	deltaData    []byte
	manifestData []byte
	signature    []byte
	fullHits     int
	deltaHits    int
}

func newUpdateServer(t *testing.T, manifest Manifest, full []byte, delta []byte, sig []byte) *updateServer {
	t.Helper()
	us := &updateServer{fullData: full, deltaData: delta, manifestData: mustJSON(t, manifest), signature: sig}
	mux := http.NewServeMux()
	mux.HandleFunc("/"+manifest.Channel+"/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write(us.manifestData)
	})
	mux.HandleFunc("/"+manifest.Channel+"/manifest.json.sig", func(w http.ResponseWriter, r *http.Request) {
		w.Write(us.signature)
	})
	mux.HandleFunc("/artifacts/full", func(w http.ResponseWriter, r *http.Request) {
		us.fullHits++
		w.Write(us.fullData)
	})
	mux.HandleFunc("/artifacts/delta", func(w http.ResponseWriter, r *http.Request) {
		us.deltaHits++
		w.Write(us.deltaData)
	})
	us.server = httptest.NewServer(mux)
	return us
}

func (s *updateServer) Close() { s.server.Close() }

func mustJSON(t *testing.T, manifest Manifest) []byte {
	t.Helper()
	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return data
}

func sign(t *testing.T, priv ed25519.PrivateKey, msg []byte) []byte {
	t.Helper()
	return []byte(base64.StdEncoding.EncodeToString(ed25519.Sign(priv, msg)))
}

func hexSum(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:])
}

func TestClientUpdateAndRollback(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Windows self-update semantics require elevated permissions in tests")
	}
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	t.Setenv("SCYTALE_UPDATER_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pub))

	oldVersion := "1.0.0"
	newVersion := "1.1.0"
	oldBinary := []byte("scytalectl " + oldVersion)
	newBinary := []byte("scytalectl " + newVersion)

	var deltaBuf bytes.Buffer
	if err := binarydist.Diff(bytes.NewReader(oldBinary), bytes.NewReader(newBinary), &deltaBuf); err != nil {
		t.Fatalf("Diff: %v", err)
	}

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	execPath := filepath.Join(t.TempDir(), "scytalectl")
	if err := os.WriteFile(execPath, oldBinary, 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	manifest := Manifest{
		Version: newVersion,
		Channel: ChannelStable,
		Builds: []Build{{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			Full: Artifact{SHA256: hexSum(newBinary)},
			Delta: &Delta{
				FromVersion: oldVersion,
				SHA256:      hexSum(deltaBuf.Bytes()),
			},
		}},
	}

	server := newUpdateServer(t, manifest, newBinary, deltaBuf.Bytes(), sign(t, priv, mustJSON(t, manifest)))
	defer server.Close()

	manifest.Builds[0].Full.URL = server.server.URL + "/artifacts/full"
	manifest.Builds[0].Delta.URL = server.server.URL + "/artifacts/delta"
	server.manifestData = mustJSON(t, manifest)
	server.signature = sign(t, priv, server.manifestData)

	client := &Client{
		Store:          store,
		BaseURL:        server.server.URL,
		ExecPath:       execPath,
		CurrentVersion: oldVersion,
		Out:            io.Discard,
	}

	if err := client.Update(context.Background(), UpdateOptions{Channel: ChannelStable, PersistChannel: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updatedData, err := os.ReadFile(execPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(updatedData, newBinary) {
		t.Fatal("update did not write the new binary")
	}
	if server.deltaHits == 0 {
		t.Fatal("expected the delta endpoint to be fetched")
	}
	if server.fullHits != 0 {
		t.Fatal("expected the full artifact to be skipped when the delta applies")
	}

	prefs, err := store.Load()
	if err != nil {
		t.Fatalf("Load preferences: %v", err)
	}
	if prefs.LastAppliedVersion != newVersion {
		t.Fatalf("expected last applied %s, got %s", newVersion, prefs.LastAppliedVersion)
	}
	if prefs.PreviousVersion != oldVersion {
		t.Fatalf("expected previous version %s, got %s", oldVersion, prefs.PreviousVersion)
	}
	backupData, err := os.ReadFile(prefs.BackupPath)
	if err != nil {
		t.Fatalf("Read backup: %v", err)
	}
	if !bytes.Equal(backupData, oldBinary) {
		t.Fatal("backup does not hold the previous binary")
	}

	client.CurrentVersion = newVersion
	if err := client.Rollback(context.Background()); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	rolledData, err := os.ReadFile(execPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(rolledData, oldBinary) {
		t.Fatal("rollback did not restore the previous binary")
	}
}

func TestClientUpdateRejectsBadSignature(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	t.Setenv("SCYTALE_UPDATER_PUBLIC_KEY", base64.StdEncoding.EncodeToString(pub))

	_, wrongPriv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	binary := []byte("scytalectl 2.0.0")
	manifest := Manifest{
		Version: "2.0.0",
		Channel: ChannelStable,
		Builds: []Build{{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			Full: Artifact{SHA256: hexSum(binary)},
		}},
	}
	server := newUpdateServer(t, manifest, binary, nil, sign(t, wrongPriv, mustJSON(t, manifest)))
	defer server.Close()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	client := &Client{Store: store, BaseURL: server.server.URL, CurrentVersion: "1.0.0", Out: io.Discard}
	if err := client.Update(context.Background(), UpdateOptions{Channel: ChannelStable}); err == nil {
		t.Fatal("expected a signature verification error")
	}
}

func TestClientRollbackWithoutBackup(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	client := &Client{Store: store, Out: io.Discard}
	if err := client.Rollback(context.Background()); err == nil {
		t.Fatal("expected an error when no backup is recorded")
	}
}
