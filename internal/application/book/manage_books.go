package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ManageBooksUseCase 图书维护用例(查询/更新/删除/排行)
// 这些操作是领域服务的薄封装，统一从应用层出入
type ManageBooksUseCase struct {
	bookService book.Service
}

// NewManageBooksUseCase 创建维护用例
func NewManageBooksUseCase(bookService book.Service) *ManageBooksUseCase {
	return &ManageBooksUseCase{bookService: bookService}
}

// Get 根据ID获取图书
func (uc *ManageBooksUseCase) Get(ctx context.Context, id uint) (*book.Book, error) {
	return uc.bookService.GetBook(ctx, id)
}

// GetByISBN 根据ISBN获取图书
func (uc *ManageBooksUseCase) GetByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return uc.bookService.GetBookByISBN(ctx, isbn)
}

// List 查询全部图书
func (uc *ManageBooksUseCase) List(ctx context.Context) ([]*book.Book, error) {
	return uc.bookService.ListBooks(ctx)
}

// Search 检索图书
func (uc *ManageBooksUseCase) Search(ctx context.Context, term string, field string) ([]*book.Book, error) {
	return uc.bookService.SearchBooks(ctx, term, book.SearchField(field))
}

// Update 部分更新图书
func (uc *ManageBooksUseCase) Update(ctx context.Context, id uint, params book.UpdateParams) error {
	return uc.bookService.UpdateBook(ctx, id, params)
}

// Delete 删除图书
func (uc *ManageBooksUseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookService.DeleteBook(ctx, id)
}

// MostBorrowed 热门图书排行
func (uc *ManageBooksUseCase) MostBorrowed(ctx context.Context, limit int) ([]*book.PopularBook, error) {
	return uc.bookService.MostBorrowed(ctx, limit)
}
