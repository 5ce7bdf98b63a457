package draft

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
)

// allowedMIMETypes is the upload allow-list. Anything else in a selection
// rejects the whole selection.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// FileSelection is one user-chosen file before it is staged
type FileSelection struct {
	Name string
	MIME string
	Data []byte
}

// SelectionFromFile reads a file from disk and sniffs its MIME type from
// the content, not the extension.
func SelectionFromFile(path string) (FileSelection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileSelection{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return FileSelection{
		Name: filepath.Base(path),
		MIME: sniffMIME(data),
		Data: data,
	}, nil
}

// sniffMIME detects the content type of a file from its leading bytes.
// http.DetectContentType appends charset parameters for text types; those
// are stripped so allow-list lookups see the bare type.
func sniffMIME(data []byte) string {
	mime := http.DetectContentType(data)
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	return mime
}

// Preview is the ephemeral local preview reference for one staged asset.
// Each preview must be released exactly once, whether its asset is removed
// individually or the whole draft is discarded.
type Preview struct {
	path     string
	released bool
	release  func() error
}

// NewPreview creates a preview with a custom release function.
// Tests use this to count releases without touching the filesystem.
func NewPreview(path string, release func() error) *Preview {
	return &Preview{path: path, release: release}
}

// Path returns the local path the preview can be opened from
func (p *Preview) Path() string {
	return p.path
}

// Released reports whether the preview reference has been released
func (p *Preview) Released() bool {
	return p.released
}

// Release frees the preview reference. Calling it again is a no-op, so
// removal paths and the teardown path can both run without double-freeing.
func (p *Preview) Release() error {
	if p.released {
		return nil
	}
	p.released = true
	if p.release != nil {
		return p.release()
	}
	return nil
}

// PreviewFactory creates a preview for a staged file
type PreviewFactory func(name string, data []byte) (*Preview, error)

// TempFilePreview writes the file to a temp file and returns a preview
// whose release removes it.
func TempFilePreview(name string, data []byte) (*Preview, error) {
	f, err := os.CreateTemp("", "ecume-preview-*"+filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create preview file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write preview file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to close preview file: %w", err)
	}

	path := f.Name()
	return NewPreview(path, func() error {
		return os.Remove(path)
	}), nil
}

// StagedAsset is one file awaiting upload, with its live preview reference
type StagedAsset struct {
	Name    string
	MIME    string
	Size    int64
	Data    []byte
	preview *Preview
}

// Preview returns the asset's preview reference
func (a *StagedAsset) Preview() *Preview {
	return a.preview
}

// StagingArea accumulates locally selected files for one draft. It owns
// every preview reference it creates: individual removals release their own
// preview, and Clear releases whatever is left, so no path can leak one.
type StagingArea struct {
	previews PreviewFactory
	assets   []*StagedAsset
}

// NewStagingArea creates a staging area with temp-file previews
func NewStagingArea() *StagingArea {
	return NewStagingAreaWithPreviews(TempFilePreview)
}

// NewStagingAreaWithPreviews creates a staging area with a custom preview
// factory
func NewStagingAreaWithPreviews(previews PreviewFactory) *StagingArea {
	return &StagingArea{previews: previews}
}

// AddFiles stages a selection of files, all or nothing: if any member has a
// MIME type outside the allow-list, no file from the call is staged and a
// single validation error names the offenders.
func (s *StagingArea) AddFiles(selection []FileSelection) error {
	var rejected []string
	for _, file := range selection {
		if !allowedMIMETypes[file.MIME] {
			rejected = append(rejected, fmt.Sprintf("%s (%s)", file.Name, file.MIME))
		}
	}
	if len(rejected) > 0 {
		return backoffice.NewValidationError(
			"only JPEG, PNG, and GIF images can be attached; rejected: " + strings.Join(rejected, ", "))
	}

	staged := make([]*StagedAsset, 0, len(selection))
	for _, file := range selection {
		preview, err := s.previews(file.Name, file.Data)
		if err != nil {
			// Roll back previews already created in this call so a
			// half-staged selection never survives
			for _, asset := range staged {
				_ = asset.preview.Release()
			}
			return fmt.Errorf("failed to create preview for %s: %w", file.Name, err)
		}

		staged = append(staged, &StagedAsset{
			Name:    file.Name,
			MIME:    file.MIME,
			Size:    int64(len(file.Data)),
			Data:    file.Data,
			preview: preview,
		})
	}

	s.assets = append(s.assets, staged...)
	return nil
}

// RemoveAsset releases the indexed asset's preview and removes it,
// preserving the relative order of the rest.
func (s *StagingArea) RemoveAsset(index int) error {
	if index < 0 || index >= len(s.assets) {
		return fmt.Errorf("asset index %d out of range (have %d)", index, len(s.assets))
	}

	if err := s.assets[index].preview.Release(); err != nil {
		return fmt.Errorf("failed to release preview: %w", err)
	}

	s.assets = append(s.assets[:index], s.assets[index+1:]...)
	return nil
}

// Clear releases every remaining preview reference. Called when the draft
// is discarded or submission succeeds; releasing is unconditional so a
// forgotten removal path cannot leak a reference.
func (s *StagingArea) Clear() {
	for _, asset := range s.assets {
		_ = asset.preview.Release()
	}
	s.assets = nil
}

// Assets returns the staged assets in order
func (s *StagingArea) Assets() []*StagedAsset {
	return s.assets
}

// Count returns the number of staged assets
func (s *StagingArea) Count() int {
	return len(s.assets)
}
