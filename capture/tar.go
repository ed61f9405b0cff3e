package capture

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractTar unpacks the frame archive a sketch recorder downloads into
// destDir. Entries that would escape destDir are rejected.
func ExtractTar(archivePath, destDir string) (int, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive %s: %w", archivePath, err)
	}
	defer f.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, fmt.Errorf("extract to %s: %w", destDir, err)
	}

	extracted := 0
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return extracted, nil
		}
		if err != nil {
			return extracted, fmt.Errorf("read archive %s: %w", archivePath, err)
		}

		name := filepath.Clean(hdr.Name)
		if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) ||
			filepath.IsAbs(name) {
			return extracted, fmt.Errorf("archive entry escapes destination: %s", hdr.Name)
		}
		target := filepath.Join(destDir, name)

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return extracted, fmt.Errorf("extract %s: %w", name, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return extracted, fmt.Errorf("extract %s: %w", name, err)
			}
			out, err := os.Create(target)
			if err != nil {
				return extracted, fmt.Errorf("extract %s: %w", name, err)
			}
			if _, err := io.Copy(out, tr); err != nil {
				out.Close()
				return extracted, fmt.Errorf("extract %s: %w", name, err)
			}
			if err := out.Close(); err != nil {
				return extracted, fmt.Errorf("extract %s: %w", name, err)
			}
			extracted++
		default:
			// Symlinks and specials have no business in a frame archive.
			return extracted, fmt.Errorf("unsupported archive entry type %c: %s",
				hdr.Typeflag, hdr.Name)
		}
	}
}
