// Package updater implements self-update for the scytalectl binary: signed
// manifest fetch, SHA-256 verified full or delta artifact download, in-place
// binary swap, and rollback to the previous build.
package updater

import (
	"bytes"
	"context"
	"crypto"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	update "github.com/inconshreveable/go-update"
)

// Client orchestrates manifest fetching, artifact validation, and binary
// swaps for scytalectl self-updates.
type Client struct {
	Store          *Store
	HTTPClient     *http.Client
	BaseURL        string
	ExecPath       string
	CurrentVersion string
	Out            io.Writer
}

// UpdateOptions controls how an update is performed.
type UpdateOptions struct {
	Channel        string
	PersistChannel bool
}

// Update downloads the manifest for opts.Channel and updates the scytalectl
// binary in place. When PersistChannel is true the channel preference is
// saved as well.
func (c *Client) Update(ctx context.Context, opts UpdateOptions) error {
	if c.Store == nil {
		return errors.New("nil preference store")
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	channel, err := NormalizeChannel(opts.Channel)
	if err != nil {
		return err
	}
	prefs, err := c.Store.Load()
	if err != nil {
		return err
	}

	manifest, err := FetchManifest(ctx, c.httpClient(), c.BaseURL, channel)
	if err != nil {
		return err
	}

	runtimeVersion := strings.TrimSpace(c.CurrentVersion)
	if runtimeVersion == "" {
		runtimeVersion = "dev"
	}

	if manifest.Version == runtimeVersion || strings.TrimSpace(prefs.LastAppliedVersion) == manifest.Version {
		fmt.Fprintf(c.Out, "scytalectl %s is already the newest build on the %s channel\n", runtimeVersion, channel)
		if opts.PersistChannel {
			prefs.Channel = channel
			return c.Store.Save(prefs)
		}
		return nil
	}

	build, ok := manifest.BuildFor(runtime.GOOS, runtime.GOARCH)
	if !ok {
		return fmt.Errorf("no build available for %s/%s in manifest", runtime.GOOS, runtime.GOARCH)
	}

	checksum, err := DecodeHex(build.Full.SHA256)
	if err != nil {
		return fmt.Errorf("decode full checksum: %w", err)
	}

	execPath, err := c.resolveExecPath()
	if err != nil {
		return err
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return fmt.Errorf("stat executable: %w", err)
	}

	backupPath := filepath.Join(c.Store.Dir(), "scytalectl.previous")
	baseOpts := update.Options{
		TargetPath:  execPath,
		TargetMode:  info.Mode(),
		Checksum:    checksum,
		OldSavePath: backupPath,
		Hash:        crypto.SHA256,
	}
	if err := baseOpts.CheckPermissions(); err != nil {
		return fmt.Errorf("insufficient permissions to update %s: %w", execPath, err)
	}

	var applyErr error
	if build.Delta != nil && strings.TrimSpace(build.Delta.FromVersion) == runtimeVersion {
		applyErr = c.applyDelta(ctx, build, baseOpts)
		if applyErr != nil {
			fmt.Fprintf(c.Out, "delta update failed (%v); falling back to full download\n", applyErr)
		}
	} else {
		applyErr = errors.New("no applicable delta")
	}
	if applyErr != nil {
		if err := c.applyFull(ctx, build, baseOpts); err != nil {
			return err
		}
	}

	prefs.PreviousVersion = runtimeVersion
	prefs.LastAppliedVersion = manifest.Version
	prefs.BackupPath = backupPath
	prefs.LastAppliedAt = time.Now().UTC()
	if opts.PersistChannel {
		prefs.Channel = channel
	}
	if err := c.Store.Save(prefs); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "updated scytalectl to %s on the %s channel\n", manifest.Version, channel)
	return nil
}

func (c *Client) applyDelta(ctx context.Context, build Build, opts update.Options) error {
	patchData, err := c.downloadArtifact(ctx, build.Delta.URL)
	if err != nil {
		return fmt.Errorf("download delta: %w", err)
	}
	expected, err := DecodeHex(build.Delta.SHA256)
	if err != nil {
		return fmt.Errorf("decode delta checksum: %w", err)
	}
	actual := sha256.Sum256(patchData)
	if !bytes.Equal(actual[:], expected) {
		return fmt.Errorf("delta checksum mismatch: got %x want %x", actual, expected)
	}
	opts.Patcher = update.NewBSDiffPatcher()
	if err := update.Apply(bytes.NewReader(patchData), opts); err != nil {
		if rerr := update.RollbackError(err); rerr != nil {
			return fmt.Errorf("apply delta update: %v (rollback failed: %v)", err, rerr)
		}
		return fmt.Errorf("apply delta update: %w", err)
	}
	return nil
}

func (c *Client) applyFull(ctx context.Context, build Build, opts update.Options) error {
	data, err := c.downloadArtifact(ctx, build.Full.URL)
	if err != nil {
		return fmt.Errorf("download full artifact: %w", err)
	}
	if err := update.Apply(bytes.NewReader(data), opts); err != nil {
		if rerr := update.RollbackError(err); rerr != nil {
			return fmt.Errorf("apply update: %v (rollback failed: %v)", err, rerr)
		}
		return fmt.Errorf("apply update: %w", err)
	}
	return nil
}

// Rollback restores the previous scytalectl binary if one is recorded.
func (c *Client) Rollback(ctx context.Context) error {
	if c.Store == nil {
		return errors.New("nil preference store")
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	prefs, err := c.Store.Load()
	if err != nil {
		return err
	}
	if prefs.BackupPath == "" {
		return errors.New("no rollback backup recorded")
	}
	backup, err := os.ReadFile(prefs.BackupPath)
	if err != nil {
		return fmt.Errorf("read backup binary: %w", err)
	}
	execPath, err := c.resolveExecPath()
	if err != nil {
		return err
	}
	info, err := os.Stat(execPath)
	if err != nil {
		return fmt.Errorf("stat executable: %w", err)
	}
	sum := sha256.Sum256(backup)
	opts := update.Options{
		TargetPath:  execPath,
		TargetMode:  info.Mode(),
		OldSavePath: prefs.BackupPath,
		Checksum:    sum[:],
		Hash:        crypto.SHA256,
	}
	if err := update.Apply(bytes.NewReader(backup), opts); err != nil {
		if rerr := update.RollbackError(err); rerr != nil {
			return fmt.Errorf("rollback failed: %v (rollback error: %v)", err, rerr)
		}
		return fmt.Errorf("rollback failed: %w", err)
	}
	prefs.LastAppliedAt = time.Now().UTC()
	prefs.LastAppliedVersion, prefs.PreviousVersion = prefs.PreviousVersion, prefs.LastAppliedVersion
	if err := c.Store.Save(prefs); err != nil {
		return err
	}
	fmt.Fprintf(c.Out, "rolled back scytalectl to %s\n", prefs.LastAppliedVersion)
	return nil
}

func (c *Client) resolveExecPath() (string, error) {
	if strings.TrimSpace(c.ExecPath) != "" {
		return c.ExecPath, nil
	}
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("determine executable path: %w", err)
	}
	return path, nil
}

func (c *Client) downloadArtifact(ctx context.Context, targetURL string) ([]byte, error) {
	return download(ctx, c.httpClient(), targetURL, "")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
