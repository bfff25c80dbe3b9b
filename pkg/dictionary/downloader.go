package dictionary

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// maxShardBytes bounds a single extracted shard file.
const maxShardBytes = 512 << 20

// EnsureDictionary checks that dir holds a shard manifest.
// If not, it downloads the .tar.gz bundle at bundleURL and extracts every
// .json member into dir.
func EnsureDictionary(ctx context.Context, dir, bundleURL string) error {
	if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if bundleURL == "" {
		return fmt.Errorf("dictionary not found in %s and no bundle url configured", dir)
	}

	slog.InfoContext(ctx, "dictionary not found, downloading bundle",
		slog.String("dir", dir),
		slog.String("url", bundleURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bundleURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "ihya-reader")

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s", resp.Status)
	}

	n, err := extractShards(resp.Body, dir)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "dictionary bundle extracted", slog.Int("files", n))
	return nil
}

// extractShards unpacks the .json members of a tar.gz stream into dir.
// Member directories are dropped so nothing is written outside dir.
// Members are staged in a temporary directory under dir and moved into place
// only once the whole stream has been read, manifest last, so an interrupted
// download never leaves a manifest next to missing or truncated shards.
func extractShards(r io.Reader, dir string) (int, error) {
	gzReader, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create dictionary dir: %w", err)
	}
	staging, err := os.MkdirTemp(dir, ".bundle-")
	if err != nil {
		return 0, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	var names []string
	seen := make(map[string]bool)
	hasManifest := false
	tarReader := tar.NewReader(gzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("error reading tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, ".json") {
			continue
		}

		name := path.Base(header.Name)
		if err := writeMember(filepath.Join(staging, name), tarReader); err != nil {
			return 0, err
		}
		if name == ManifestFile {
			hasManifest = true
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 && !hasManifest {
		return 0, fmt.Errorf("no json files found in downloaded archive")
	}
	if !hasManifest {
		return 0, fmt.Errorf("bundle did not contain %s", ManifestFile)
	}

	for _, name := range append(names, ManifestFile) {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(dir, name)); err != nil {
			return 0, fmt.Errorf("install %s: %w", name, err)
		}
	}
	return len(names) + 1, nil
}

func writeMember(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(r, maxShardBytes+1))
	if err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if written > maxShardBytes {
		return fmt.Errorf("%s exceeds %d bytes", filepath.Base(dest), maxShardBytes)
	}
	return out.Close()
}
