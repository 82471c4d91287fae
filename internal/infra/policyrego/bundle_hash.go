package policyrego

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"sort"
)

type bundleHashPayload struct {
	Files []bundleHashFile `json:"files"`
}

type bundleHashFile struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
}

// ComputeBundleHashFromPath digests every file in the bundle directory into
// one stable identifier, so a result can always be traced to the exact
// policy content that produced it.
func ComputeBundleHashFromPath(bundlePath string) (string, error) {
	return computeBundleHashFromFS(os.DirFS(bundlePath))
}

func computeBundleHashFromFS(fsys fs.FS) (string, error) {
	var files []bundleHashFile
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(content)
		files = append(files, bundleHashFile{
			Path:   path,
			SHA256: hex.EncodeToString(sum[:]),
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	canonical, err := json.Marshal(bundleHashPayload{Files: files})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
