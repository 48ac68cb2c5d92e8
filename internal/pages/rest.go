package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
)

const selectFields = "CanvasContent1,Title,CommentsDisabled,PageLayoutType,PromotedState,BannerImageUrl"

// Template file type for a modern page.
const templateFileTypePage = 3

// RESTStore talks to the host site's REST API.
type RESTStore struct {
	// BaseURL is the absolute site URL. Override in tests to point at a
	// mock server.
	BaseURL string
	// Token, when not empty, is sent as a bearer Authorization header.
	Token string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

func NewRESTStore(siteURL string) *RESTStore {
	return &RESTStore{
		BaseURL: strings.TrimRight(siteURL, "/"),
	}
}

// List item field payloads, odata=nometadata shape.

type listItemFields struct {
	BannerImageURL   *fieldURL `json:"BannerImageUrl"`
	CanvasContent1   string    `json:"CanvasContent1"`
	CommentsDisabled bool      `json:"CommentsDisabled"`
	PageLayoutType   string    `json:"PageLayoutType"`
	PromotedState    float64   `json:"PromotedState"`
	Title            string    `json:"Title"`
}

type fieldURL struct {
	Description string `json:"Description"`
	URL         string `json:"Url"`
}

type componentList struct {
	Value []canvas.PartDefinition `json:"value"`
}

func (s *RESTStore) FetchPageContent(ctx context.Context, ref PageRef) (PageContent, error) {
	requestURL := s.itemURL(ref, "?$select="+selectFields)
	resp, err := s.do(ctx, http.MethodGet, requestURL, nil, nil)
	if err != nil {
		return PageContent{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return PageContent{}, ErrPageNotExist
	}
	if err := successful(resp, requestURL); err != nil {
		return PageContent{}, err
	}

	var fields listItemFields
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return PageContent{}, fmt.Errorf("decode page fields: %w", err)
	}
	content := PageContent{
		Markup:           fields.CanvasContent1,
		Title:            fields.Title,
		CommentsDisabled: fields.CommentsDisabled,
		Layout:           canvas.PageLayout(fields.PageLayoutType),
		Promoted:         canvas.PromotedState(fields.PromotedState),
	}
	if fields.BannerImageURL != nil {
		content.BannerImageURL = fields.BannerImageURL.URL
	}
	return content, nil
}

func (s *RESTStore) WritePageContent(ctx context.Context, ref PageRef, markup string) error {
	body, err := json.Marshal(map[string]string{"CanvasContent1": markup})
	if err != nil {
		return err
	}
	requestURL := s.itemURL(ref, "")
	resp, err := s.do(ctx, http.MethodPost, requestURL, mergeHeaders(), body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrPageNotExist
	}
	return successful(resp, requestURL)
}

func (s *RESTStore) SetCommentsDisabled(ctx context.Context, ref PageRef, disabled bool) error {
	requestURL := s.itemURL(ref, fmt.Sprintf("/SetCommentsDisabled(value=%t)", disabled))
	resp, err := s.do(ctx, http.MethodPost, requestURL, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrPageNotExist
	}
	return successful(resp, requestURL)
}

// CreatePage provisions the page file from the page template, then
// stamps the title on its list item.
func (s *RESTStore) CreatePage(ctx context.Context, ref PageRef, title string) error {
	folder := odataLiteral(s.serverRelative(PageRef(path.Dir(string(ref)))))
	target := odataLiteral(s.serverRelative(ref))
	requestURL := fmt.Sprintf("%s/_api/web/GetFolderByServerRelativeUrl('%s')/Files/AddTemplateFile(urloftemplatefile='%s',templatefiletype=%d)",
		s.BaseURL, folder, target, templateFileTypePage)
	resp, err := s.do(ctx, http.MethodPost, requestURL, nil, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := successful(resp, requestURL); err != nil {
		return err
	}

	if title == "" {
		return nil
	}
	body, err := json.Marshal(map[string]string{"Title": title})
	if err != nil {
		return err
	}
	itemURL := s.itemURL(ref, "")
	titleResp, err := s.do(ctx, http.MethodPost, itemURL, mergeHeaders(), body)
	if err != nil {
		return err
	}
	defer titleResp.Body.Close()
	return successful(titleResp, itemURL)
}

// ListComponents returns the components installed on the host, importable
// with canvas.FromPartDefinition.
func (s *RESTStore) ListComponents(ctx context.Context) ([]canvas.PartDefinition, error) {
	requestURL := s.BaseURL + "/_api/web/GetClientSideWebParts"
	resp, err := s.do(ctx, http.MethodGet, requestURL, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := successful(resp, requestURL); err != nil {
		return nil, err
	}

	var list componentList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode components: %w", err)
	}
	return list.Value, nil
}

/* Request plumbing */

func (s *RESTStore) do(ctx context.Context, method, requestURL string, headers map[string]string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json;odata=nometadata")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;odata=nometadata;charset=utf-8")
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	CurrentLogger().Debugf("%s %s", method, requestURL)
	resp, err := client.Do(req)
	if err == nil {
		CurrentLogger().Tracef("%s %s: %s", method, requestURL, resp.Status)
	}
	return resp, err
}

func (s *RESTStore) itemURL(ref PageRef, suffix string) string {
	return fmt.Sprintf("%s/_api/web/GetFileByServerRelativeUrl('%s')/ListItemAllFields%s",
		s.BaseURL, odataLiteral(s.serverRelative(ref)), suffix)
}

// serverRelative expands a library-relative ref to the server-relative
// URL the API expects, using the site path from BaseURL.
func (s *RESTStore) serverRelative(ref PageRef) string {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "/" + string(ref)
	}
	return path.Join("/", u.Path, string(ref))
}

// odataLiteral escapes a value for use inside an OData quoted literal.
func odataLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

func mergeHeaders() map[string]string {
	return map[string]string{
		"X-HTTP-Method": "MERGE",
		"IF-MATCH":      "*",
	}
}

func successful(resp *http.Response, requestURL string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s %s: status %d: %s",
		resp.Request.Method, requestURL, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
