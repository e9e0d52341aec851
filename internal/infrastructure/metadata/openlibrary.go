package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OpenLibraryProvider Open Library数据源(Google Books的回退)
// 接口: GET {base}/api/books?bibkeys=ISBN:{isbn}&format=json&jscmd=data
type OpenLibraryProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenLibraryProvider 创建Open Library数据源
func NewOpenLibraryProvider(baseURL string, timeout time.Duration) *OpenLibraryProvider {
	return &OpenLibraryProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name 数据源标识
func (p *OpenLibraryProvider) Name() string {
	return "open_library"
}

// openLibraryBook Open Library响应结构(按bibkey取值)
type openLibraryBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate   string `json:"publish_date"`
	NumberOfPages int    `json:"number_of_pages"`
	Subjects      []struct {
		Name string `json:"name"`
	} `json:"subjects"`
	Cover struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"cover"`
}

// FetchByISBN 按ISBN查询书目数据
func (p *OpenLibraryProvider) FetchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data", p.baseURL, isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Open Library失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open Library返回状态码%d", resp.StatusCode)
	}

	var body map[string]openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("解析Open Library响应失败: %w", err)
	}

	entry, ok := body["ISBN:"+isbn]
	if !ok {
		return nil, nil
	}

	authors := make([]string, len(entry.Authors))
	for i, a := range entry.Authors {
		authors[i] = a.Name
	}

	publisher := ""
	if len(entry.Publishers) > 0 {
		publisher = entry.Publishers[0].Name
	}

	subjects := make([]string, len(entry.Subjects))
	for i, s := range entry.Subjects {
		subjects[i] = s.Name
	}

	cover := entry.Cover.Large
	if cover == "" {
		cover = entry.Cover.Medium
	}

	return &BookMetadata{
		ISBN:            isbn,
		Title:           entry.Title,
		Authors:         joinAuthors(authors),
		Publisher:       publisher,
		PublicationYear: yearFromDate(entry.PublishDate),
		Category:        firstCategory(subjects),
		CoverImageURL:   secureCoverURL(cover),
		PageCount:       entry.NumberOfPages,
		Source:          p.Name(),
	}, nil
}
