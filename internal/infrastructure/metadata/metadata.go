package metadata

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"
)

// BookMetadata 外部书目数据(已归一化)
type BookMetadata struct {
	ISBN            string
	Title           string
	Authors         string // 多作者以", "连接
	Publisher       string
	PublicationYear *int
	Category        string
	Description     string
	CoverImageURL   string
	PageCount       int
	Language        string
	Source          string // 数据来源(google_books/open_library)
}

// Provider 书目数据源
// 未命中返回(nil, nil)，调用方据此区分"查不到"与"服务故障"
type Provider interface {
	Name() string
	FetchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
}

// Searcher 支持关键词检索的数据源(目前仅Google Books)
type Searcher interface {
	Search(ctx context.Context, query string, max int) ([]*BookMetadata, error)
}

// maxDescriptionRunes 简介最大长度(按字符计)
const maxDescriptionRunes = 1000

// truncateDescription 截断过长的简介
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDescriptionRunes]) + "..."
}

// joinAuthors 多作者拼接
func joinAuthors(authors []string) string {
	return strings.Join(authors, ", ")
}

// firstCategory 取第一个分类，没有则归入General
func firstCategory(categories []string) string {
	if len(categories) == 0 {
		return "General"
	}
	return categories[0]
}

// yearFromDate 从日期串提取年份(前4位数字)
// 外部API的publishedDate格式不统一: "2015"、"2015-10"、"October 26, 2015"
func yearFromDate(date string) *int {
	digits := make([]rune, 0, 4)
	for _, r := range date {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			if len(digits) == 4 {
				break
			}
		} else if len(digits) > 0 {
			// 数字被打断，重新找连续4位
			digits = digits[:0]
		}
	}
	if len(digits) != 4 {
		return nil
	}
	year, err := strconv.Atoi(string(digits))
	if err != nil {
		return nil
	}
	return &year
}

// secureCoverURL 封面URL归一化: 强制https
func secureCoverURL(url string) string {
	return strings.Replace(url, "http://", "https://", 1)
}
