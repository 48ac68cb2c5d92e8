// Package pages moves page canvases between the document model and a
// backing store: the host site over REST, a local directory, or memory
// in tests.
package pages

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/pkg/clock"
)

var (
	ErrPageNotExist = errors.New("page does not exist")
)

// PageRef is the library-relative path of a page, e.g. SitePages/home.aspx.
type PageRef string

func (r PageRef) String() string {
	return string(r)
}

// PageContent is the stored state of a page. Markup is the canvas wire
// string; the remaining fields are the metadata kept next to it, zero
// when the backing store does not know them.
type PageContent struct {
	Markup           string
	Title            string
	CommentsDisabled bool
	Layout           canvas.PageLayout
	Promoted         canvas.PromotedState
	BannerImageURL   string
}

// Store reads and writes page state.
//
// A store must return the same markup it was given, byte for byte. How
// it persists pages is its own business.
type Store interface {
	FetchPageContent(ctx context.Context, ref PageRef) (PageContent, error)
	WritePageContent(ctx context.Context, ref PageRef, markup string) error
	SetCommentsDisabled(ctx context.Context, ref PageRef, disabled bool) error
}

// Creator is implemented by stores that can provision a new page under
// a ref before content is written to it.
type Creator interface {
	CreatePage(ctx context.Context, ref PageRef, title string) error
}

// ComponentCatalog is implemented by stores that can enumerate the web
// part components installed on the host.
type ComponentCatalog interface {
	ListComponents(ctx context.Context) ([]canvas.PartDefinition, error)
}

/* FS */

// FSStore keeps one markup file per page under a root directory, with a
// YAML sidecar for the metadata the markup itself does not carry.
type FSStore struct {
	root string
}

// metadata is the sidecar document. SavedAt comes from pkg/clock so
// tests can freeze it.
type metadata struct {
	Title            string               `yaml:"title,omitempty"`
	CommentsDisabled bool                 `yaml:"comments_disabled"`
	Layout           canvas.PageLayout    `yaml:"layout,omitempty"`
	Promoted         canvas.PromotedState `yaml:"promoted,omitempty"`
	BannerImageURL   string               `yaml:"banner_image_url,omitempty"`
	SavedAt          time.Time            `yaml:"saved_at"`
}

func NewFSStore(root string) (*FSStore, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) FetchPageContent(ctx context.Context, ref PageRef) (PageContent, error) {
	data, err := os.ReadFile(s.pagePath(ref))
	if errors.Is(err, os.ErrNotExist) {
		return PageContent{}, ErrPageNotExist
	}
	if err != nil {
		return PageContent{}, err
	}

	content := PageContent{Markup: string(data)}
	meta, err := s.readMetadata(ref)
	if err != nil {
		return PageContent{}, err
	}
	if meta != nil {
		content.Title = meta.Title
		content.CommentsDisabled = meta.CommentsDisabled
		content.Layout = meta.Layout
		content.Promoted = meta.Promoted
		content.BannerImageURL = meta.BannerImageURL
	}
	return content, nil
}

func (s *FSStore) WritePageContent(ctx context.Context, ref PageRef, markup string) error {
	if err := os.MkdirAll(filepath.Dir(s.pagePath(ref)), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.pagePath(ref), []byte(markup), 0644); err != nil {
		return err
	}

	// Preserve the metadata of an existing page, stamp the save time.
	meta, err := s.readMetadata(ref)
	if err != nil {
		return err
	}
	if meta == nil {
		meta = &metadata{}
	}
	meta.SavedAt = clock.Now()
	return s.writeMetadata(ref, meta)
}

func (s *FSStore) SetCommentsDisabled(ctx context.Context, ref PageRef, disabled bool) error {
	if _, err := os.Stat(s.pagePath(ref)); errors.Is(err, os.ErrNotExist) {
		return ErrPageNotExist
	} else if err != nil {
		return err
	}
	meta, err := s.readMetadata(ref)
	if err != nil {
		return err
	}
	if meta == nil {
		meta = &metadata{SavedAt: clock.Now()}
	}
	meta.CommentsDisabled = disabled
	return s.writeMetadata(ref, meta)
}

func (s *FSStore) CreatePage(ctx context.Context, ref PageRef, title string) error {
	if err := os.MkdirAll(filepath.Dir(s.pagePath(ref)), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.pagePath(ref), nil, 0644); err != nil {
		return err
	}
	return s.writeMetadata(ref, &metadata{
		Title:   title,
		SavedAt: clock.Now(),
	})
}

// Mirror writes the full state fetched from another store, metadata
// included. Used when pulling pages from a live site into the local
// directory.
func (s *FSStore) Mirror(ctx context.Context, ref PageRef, content PageContent) error {
	if err := os.MkdirAll(filepath.Dir(s.pagePath(ref)), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.pagePath(ref), []byte(content.Markup), 0644); err != nil {
		return err
	}
	return s.writeMetadata(ref, &metadata{
		Title:            content.Title,
		CommentsDisabled: content.CommentsDisabled,
		Layout:           content.Layout,
		Promoted:         content.Promoted,
		BannerImageURL:   content.BannerImageURL,
		SavedAt:          clock.Now(),
	})
}

func (s *FSStore) pagePath(ref PageRef) string {
	return filepath.Join(s.root, filepath.FromSlash(string(ref))+".html")
}

func (s *FSStore) metadataPath(ref PageRef) string {
	return filepath.Join(s.root, filepath.FromSlash(string(ref))+".meta.yaml")
}

// readMetadata returns nil without an error when no sidecar exists.
func (s *FSStore) readMetadata(ref PageRef) (*metadata, error) {
	data, err := os.ReadFile(s.metadataPath(ref))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var meta metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("sidecar %s: %w", s.metadataPath(ref), err)
	}
	return &meta, nil
}

func (s *FSStore) writeMetadata(ref PageRef, meta *metadata) error {
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(s.metadataPath(ref), data, 0644)
}

/* Memory */

// MemStore is the map-backed store used in tests.
type MemStore struct {
	mu    sync.RWMutex
	pages map[PageRef]PageContent
}

func NewMemStore() *MemStore {
	return &MemStore{pages: map[PageRef]PageContent{}}
}

// Seed installs a page without going through the store contract.
func (s *MemStore) Seed(ref PageRef, content PageContent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[ref] = content
}

func (s *MemStore) FetchPageContent(ctx context.Context, ref PageRef) (PageContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.pages[ref]
	if !ok {
		return PageContent{}, ErrPageNotExist
	}
	return content, nil
}

func (s *MemStore) WritePageContent(ctx context.Context, ref PageRef, markup string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content := s.pages[ref]
	content.Markup = markup
	s.pages[ref] = content
	return nil
}

func (s *MemStore) SetCommentsDisabled(ctx context.Context, ref PageRef, disabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.pages[ref]
	if !ok {
		return ErrPageNotExist
	}
	content.CommentsDisabled = disabled
	s.pages[ref] = content
	return nil
}

func (s *MemStore) CreatePage(ctx context.Context, ref PageRef, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[ref]; ok {
		return fmt.Errorf("page already exists: %s", ref)
	}
	s.pages[ref] = PageContent{Title: title}
	return nil
}
