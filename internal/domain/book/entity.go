package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 一条记录代表一个书目(title)，馆藏副本数由TotalCopies/AvailableCopies跟踪
// 2. ISBN可为空(旧书无ISBN)，非空时由数据库唯一索引保证不重复
// 3. AvailableCopies只能通过流通(借出/归还)或管理员修正变化，
//    任何时刻满足 0 <= AvailableCopies <= TotalCopies
type Book struct {
	ID              uint
	ISBN            string // ISBN号，可为空
	Title           string // 书名
	Author          string // 作者(多作者以", "连接的展示串)
	Publisher       string // 出版社
	PublicationYear *int   // 出版年份，可为空
	Category        string // 分类
	Description     string // 简介
	CoverImageURL   string // 封面图片URL
	PageCount       int    // 页数
	Language        string // 语言
	TotalCopies     int    // 馆藏副本总数(>=1)
	AvailableCopies int    // 当前可借副本数
	ShelfLocation   string // 书架位置
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// totalCopies<1时取1；availableCopies初始等于totalCopies
func NewBook(isbn, title, author, publisher string, publicationYear *int,
	category, description, coverImageURL string, pageCount int, language string,
	totalCopies int, shelfLocation string) *Book {
	if totalCopies < 1 {
		totalCopies = 1
	}
	now := time.Now()
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Publisher:       publisher,
		PublicationYear: publicationYear,
		Category:        category,
		Description:     description,
		CoverImageURL:   coverImageURL,
		PageCount:       pageCount,
		Language:        language,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		ShelfLocation:   shelfLocation,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsAvailable 是否有可借副本
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// SetCopies 管理员修正副本数(领域行为)
// 业务规则: total>=1 且 0<=available<=total
func (b *Book) SetCopies(total, available int) error {
	if total < 1 || available < 0 || available > total {
		return ErrInvalidCopies
	}
	b.TotalCopies = total
	b.AvailableCopies = available
	b.UpdatedAt = time.Now()
	return nil
}

// SearchField 检索字段
type SearchField string

const (
	SearchByTitle    SearchField = "title"
	SearchByAuthor   SearchField = "author"
	SearchByISBN     SearchField = "isbn"
	SearchByCategory SearchField = "category"
	SearchByAny      SearchField = "any" // title/author/isbn 任一匹配
)

// Valid 检索字段是否合法
func (f SearchField) Valid() bool {
	switch f {
	case SearchByTitle, SearchByAuthor, SearchByISBN, SearchByCategory, SearchByAny:
		return true
	}
	return false
}

// UpdateParams 图书部分更新参数
// 设计说明: 每个可更新字段都是指针，nil表示"保持原值"。
// 取代动态map的更新方式，编译期即可发现字段名错误。
type UpdateParams struct {
	ISBN            *string
	Title           *string
	Author          *string
	Publisher       *string
	PublicationYear *int
	Category        *string
	Description     *string
	CoverImageURL   *string
	PageCount       *int
	Language        *string
	TotalCopies     *int
	AvailableCopies *int
	ShelfLocation   *string
}

// Empty 是否没有任何待更新字段
func (p UpdateParams) Empty() bool {
	return p.ISBN == nil && p.Title == nil && p.Author == nil &&
		p.Publisher == nil && p.PublicationYear == nil && p.Category == nil &&
		p.Description == nil && p.CoverImageURL == nil && p.PageCount == nil &&
		p.Language == nil && p.TotalCopies == nil && p.AvailableCopies == nil &&
		p.ShelfLocation == nil
}

// PopularBook 热门图书(按借出次数排名)
type PopularBook struct {
	Book
	BorrowCount int64 // 关联借阅记录数
}
