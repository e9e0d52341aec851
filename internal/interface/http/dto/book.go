package dto

import (
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// AddBookRequest 图书编目请求
type AddBookRequest struct {
	ISBN            string `json:"isbn" binding:"omitempty,max=20"`
	Title           string `json:"title" binding:"omitempty,max=200"`
	Author          string `json:"author" binding:"omitempty,max=100"`
	Publisher       string `json:"publisher" binding:"omitempty,max=100"`
	PublicationYear *int   `json:"publication_year"`
	Category        string `json:"category" binding:"omitempty,max=50"`
	Description     string `json:"description"`
	CoverImageURL   string `json:"cover_image_url" binding:"omitempty,max=500"`
	PageCount       int    `json:"page_count" binding:"omitempty,min=0"`
	Language        string `json:"language" binding:"omitempty,max=30"`
	TotalCopies     int    `json:"total_copies" binding:"omitempty,min=1"`
	ShelfLocation   string `json:"shelf_location" binding:"omitempty,max=50"`
	AutoFill        bool   `json:"auto_fill"` // 从外部数据源补全空缺字段
}

// UpdateBookRequest 图书更新请求(字段为nil表示不修改)
type UpdateBookRequest struct {
	ISBN            *string `json:"isbn"`
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	Publisher       *string `json:"publisher"`
	PublicationYear *int    `json:"publication_year"`
	Category        *string `json:"category"`
	Description     *string `json:"description"`
	CoverImageURL   *string `json:"cover_image_url"`
	PageCount       *int    `json:"page_count"`
	Language        *string `json:"language"`
	TotalCopies     *int    `json:"total_copies"`
	AvailableCopies *int    `json:"available_copies"`
	ShelfLocation   *string `json:"shelf_location"`
}

// ToUpdateParams 转换为领域层更新参数
func (r UpdateBookRequest) ToUpdateParams() book.UpdateParams {
	return book.UpdateParams{
		ISBN:            r.ISBN,
		Title:           r.Title,
		Author:          r.Author,
		Publisher:       r.Publisher,
		PublicationYear: r.PublicationYear,
		Category:        r.Category,
		Description:     r.Description,
		CoverImageURL:   r.CoverImageURL,
		PageCount:       r.PageCount,
		Language:        r.Language,
		TotalCopies:     r.TotalCopies,
		AvailableCopies: r.AvailableCopies,
		ShelfLocation:   r.ShelfLocation,
	}
}

// BookResponse 图书响应
type BookResponse struct {
	ID              uint      `json:"id"`
	ISBN            string    `json:"isbn"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Publisher       string    `json:"publisher"`
	PublicationYear *int      `json:"publication_year"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	CoverImageURL   string    `json:"cover_image_url"`
	PageCount       int       `json:"page_count"`
	Language        string    `json:"language"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	ShelfLocation   string    `json:"shelf_location"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToBookResponse 领域实体 → HTTP响应
func ToBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Category:        b.Category,
		Description:     b.Description,
		CoverImageURL:   b.CoverImageURL,
		PageCount:       b.PageCount,
		Language:        b.Language,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		ShelfLocation:   b.ShelfLocation,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToBookResponses 批量转换
func ToBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}

// PopularBookResponse 热门图书响应
type PopularBookResponse struct {
	BookResponse
	BorrowCount int64 `json:"borrow_count"`
}

// LookupBookResponse 外部书目查询响应
type LookupBookResponse struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	Publisher       string `json:"publisher"`
	PublicationYear *int   `json:"publication_year"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	CoverImageURL   string `json:"cover_image_url"`
	PageCount       int    `json:"page_count"`
	Language        string `json:"language"`
	Source          string `json:"source"`
}
