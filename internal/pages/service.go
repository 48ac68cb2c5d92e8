package pages

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/gosimple/slug"
	"github.com/itchyny/gojq"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
)

// DefaultLibrary is the document library modern pages live in.
const DefaultLibrary = "SitePages"

// Service moves pages between the document model and a store.
type Service struct {
	store   Store
	format  canvas.Format
	library string
}

type ServiceOption func(*Service)

// WithFormat sets the wire format used for parsing and rendering.
func WithFormat(format canvas.Format) ServiceOption {
	return func(s *Service) {
		s.format = format
	}
}

// WithLibrary overrides the library new pages are created under.
func WithLibrary(library string) ServiceOption {
	return func(s *Service) {
		s.library = library
	}
}

func NewService(store Store, options ...ServiceOption) *Service {
	service := &Service{
		store:   store,
		format:  canvas.DefaultFormat(),
		library: DefaultLibrary,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// Load fetches and parses a page. An empty stored markup, which the host
// reports for never edited pages, loads as a page without sections.
func (s *Service) Load(ctx context.Context, ref PageRef) (*canvas.Page, error) {
	content, err := s.store.FetchPageContent(ctx, ref)
	if err != nil {
		return nil, err
	}

	page := canvas.NewPage(canvas.WithFormat(s.format))
	if content.Markup != "" {
		if err := page.FromMarkup(content.Markup); err != nil {
			return nil, fmt.Errorf("page %s: %w", ref, err)
		}
	}
	page.Title = content.Title
	page.CommentsDisabled = content.CommentsDisabled
	if content.Layout != "" {
		page.Layout = content.Layout
	}
	page.Promoted = content.Promoted
	page.BannerImageURL = content.BannerImageURL
	return page, nil
}

// Save renders the page and writes it, then aligns the comments flag.
func (s *Service) Save(ctx context.Context, ref PageRef, page *canvas.Page) error {
	rendered, err := page.ToMarkup()
	if err != nil {
		return err
	}
	if err := s.store.WritePageContent(ctx, ref, rendered); err != nil {
		return err
	}
	if err := s.store.SetCommentsDisabled(ctx, ref, page.CommentsDisabled); err != nil {
		return err
	}
	CurrentLogger().Infof("Saved page %s", ref)
	return nil
}

// Create provisions an empty page named after the title and returns its
// ref, e.g. "Team Updates" becomes SitePages/team-updates.aspx.
func (s *Service) Create(ctx context.Context, title string) (PageRef, error) {
	ref := PageRef(path.Join(s.library, slug.Make(title)+".aspx"))
	if err := s.EnsurePage(ctx, ref, title); err != nil {
		return "", err
	}

	page := canvas.NewPage(canvas.WithFormat(s.format))
	page.Title = title
	if err := s.Save(ctx, ref, page); err != nil {
		return "", err
	}
	CurrentLogger().Infof("Created page %s", ref)
	return ref, nil
}

// EnsurePage provisions the page when it does not exist yet. Stores that
// cannot create pages report the missing page instead.
func (s *Service) EnsurePage(ctx context.Context, ref PageRef, title string) error {
	_, err := s.store.FetchPageContent(ctx, ref)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPageNotExist) {
		return err
	}
	creator, ok := s.store.(Creator)
	if !ok {
		return fmt.Errorf("store cannot create %s: %w", ref, ErrPageNotExist)
	}
	return creator.CreatePage(ctx, ref, title)
}

// Query evaluates a jq expression against the page projection and
// returns every produced value.
func (s *Service) Query(page *canvas.Page, expr string) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	var results []any
	iter := query.Run(ProjectPage(page))
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query %q: %w", expr, err)
		}
		results = append(results, v)
	}
	return results, nil
}

// ProjectPage flattens a page into plain maps and slices, the shape
// queries and structured dumps work on.
func ProjectPage(page *canvas.Page) map[string]any {
	sections := []any{}
	for _, section := range page.Sections {
		columns := []any{}
		for _, column := range section.Columns {
			controls := []any{}
			for _, control := range column.Controls {
				switch c := control.(type) {
				case *canvas.TextControl:
					controls = append(controls, map[string]any{
						"kind": "text",
						"id":   c.ID().String(),
						"text": c.Text(),
					})
				case *canvas.WebPart:
					controls = append(controls, map[string]any{
						"kind":        "webPart",
						"id":          c.ID().String(),
						"componentId": c.ComponentID().String(),
						"title":       c.Title(),
						"properties":  c.Properties(),
					})
				}
			}
			columns = append(columns, map[string]any{
				"factor":   int(column.Factor),
				"controls": controls,
			})
		}
		sections = append(sections, map[string]any{
			"columns": columns,
		})
	}
	return map[string]any{
		"title":            page.Title,
		"layout":           string(page.Layout),
		"commentsDisabled": page.CommentsDisabled,
		"promoted":         int(page.Promoted),
		"bannerImageUrl":   page.BannerImageURL,
		"sections":         sections,
	}
}
