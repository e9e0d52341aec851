package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleBooksProvider Google Books数据源
// 接口: GET {base}/volumes?q=isbn:{isbn}
type GoogleBooksProvider struct {
	baseURL string
	client  *http.Client
}

// NewGoogleBooksProvider 创建Google Books数据源
func NewGoogleBooksProvider(baseURL string, timeout time.Duration) *GoogleBooksProvider {
	return &GoogleBooksProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name 数据源标识
func (p *GoogleBooksProvider) Name() string {
	return "google_books"
}

// googleVolumesResponse Google Books响应结构(只取用到的字段)
type googleVolumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo googleVolumeInfo `json:"volumeInfo"`
	} `json:"items"`
}

type googleVolumeInfo struct {
	Title               string   `json:"title"`
	Authors             []string `json:"authors"`
	Publisher           string   `json:"publisher"`
	PublishedDate       string   `json:"publishedDate"`
	Description         string   `json:"description"`
	PageCount           int      `json:"pageCount"`
	Categories          []string `json:"categories"`
	Language            string   `json:"language"`
	IndustryIdentifiers []struct {
		Type       string `json:"type"`
		Identifier string `json:"identifier"`
	} `json:"industryIdentifiers"`
	ImageLinks struct {
		Thumbnail string `json:"thumbnail"`
	} `json:"imageLinks"`
}

// isbn13 从行业标识中提取ISBN(优先13位)
func (v googleVolumeInfo) isbn13() string {
	var isbn10 string
	for _, id := range v.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// toMetadata 规整为统一的书目记录
func (p *GoogleBooksProvider) toMetadata(info googleVolumeInfo, isbn string) *BookMetadata {
	// 封面取高清两倍图
	cover := secureCoverURL(info.ImageLinks.Thumbnail)
	cover = strings.Replace(cover, "zoom=1", "zoom=2", 1)

	return &BookMetadata{
		ISBN:            isbn,
		Title:           info.Title,
		Authors:         joinAuthors(info.Authors),
		Publisher:       info.Publisher,
		PublicationYear: yearFromDate(info.PublishedDate),
		Category:        firstCategory(info.Categories),
		Description:     truncateDescription(info.Description),
		CoverImageURL:   cover,
		PageCount:       info.PageCount,
		Language:        info.Language,
		Source:          p.Name(),
	}
}

// FetchByISBN 按ISBN查询书目数据
func (p *GoogleBooksProvider) FetchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s", p.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Google Books失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Books返回状态码%d", resp.StatusCode)
	}

	var body googleVolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("解析Google Books响应失败: %w", err)
	}

	// 未命中不算错误
	if body.TotalItems == 0 || len(body.Items) == 0 {
		return nil, nil
	}

	return p.toMetadata(body.Items[0].VolumeInfo, isbn), nil
}

// Search 按关键词检索书目(书名/作者等自由文本)
// 未命中返回空切片，不算错误
func (p *GoogleBooksProvider) Search(ctx context.Context, query string, max int) ([]*BookMetadata, error) {
	if max <= 0 || max > 40 {
		max = 10
	}
	endpoint := fmt.Sprintf("%s/volumes?q=%s&maxResults=%d", p.baseURL, url.QueryEscape(query), max)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建请求失败: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Google Books失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google Books返回状态码%d", resp.StatusCode)
	}

	var body googleVolumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("解析Google Books响应失败: %w", err)
	}

	results := make([]*BookMetadata, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, p.toMetadata(item.VolumeInfo, item.VolumeInfo.isbn13()))
	}
	return results, nil
}
