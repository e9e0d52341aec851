package book

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ExportBooksUseCase 馆藏CSV导出用例
type ExportBooksUseCase struct {
	bookService book.Service
}

// NewExportBooksUseCase 创建导出用例
func NewExportBooksUseCase(bookService book.Service) *ExportBooksUseCase {
	return &ExportBooksUseCase{bookService: bookService}
}

// csvHeader 导出列(列序固定，供外部表格工具导入)
var csvHeader = []string{
	"id", "isbn", "title", "author", "publisher", "year",
	"category", "pageCount", "language", "totalCopies", "availableCopies", "shelfLocation",
}

// Execute 导出全部馆藏为CSV
func (uc *ExportBooksUseCase) Execute(ctx context.Context, w io.Writer) error {
	books, err := uc.bookService.ListBooks(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return apperrors.Wrap(err, "写CSV表头失败")
	}

	for _, b := range books {
		year := ""
		if b.PublicationYear != nil {
			year = strconv.Itoa(*b.PublicationYear)
		}
		record := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.ISBN,
			b.Title,
			b.Author,
			b.Publisher,
			year,
			b.Category,
			strconv.Itoa(b.PageCount),
			b.Language,
			strconv.Itoa(b.TotalCopies),
			strconv.Itoa(b.AvailableCopies),
			b.ShelfLocation,
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(err, "写CSV记录失败")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(err, "导出CSV失败")
	}
	return nil
}
