package book

import (
	"context"
	"log"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/metadata"
	"github.com/xiebiao/library/pkg/mq"
)

// AddBookUseCase 图书编目用例
// 可选的元数据补全: 只填ISBN时从外部数据源拉取书目信息，
// 数据源不可用不阻塞编目(外部字段留空)
type AddBookUseCase struct {
	bookService book.Service
	metadata    *metadata.Client // 可为nil(未启用)
	publisher   *mq.Publisher    // 可为nil(未启用)
}

// NewAddBookUseCase 创建编目用例
func NewAddBookUseCase(bookService book.Service, metadataClient *metadata.Client, publisher *mq.Publisher) *AddBookUseCase {
	return &AddBookUseCase{
		bookService: bookService,
		metadata:    metadataClient,
		publisher:   publisher,
	}
}

// AddBookRequest 编目请求DTO
type AddBookRequest struct {
	ISBN            string
	Title           string
	Author          string
	Publisher       string
	PublicationYear *int
	Category        string
	Description     string
	CoverImageURL   string
	PageCount       int
	Language        string
	TotalCopies     int
	ShelfLocation   string
	AutoFill        bool // 从外部数据源补全空缺字段
}

// BookAddedEvent 图书上架事件载荷
type BookAddedEvent struct {
	BookID uint   `json:"book_id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Execute 执行编目
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*book.Book, error) {
	// 1. 可选: 外部数据源补全
	if req.AutoFill && req.ISBN != "" && uc.metadata != nil {
		if meta, err := uc.metadata.FetchByISBN(ctx, req.ISBN); err == nil && meta != nil {
			fillFromMetadata(&req, meta)
		}
	}

	// 2. 领域校验 + 持久化
	b := book.NewBook(req.ISBN, req.Title, req.Author, req.Publisher, req.PublicationYear,
		req.Category, req.Description, req.CoverImageURL, req.PageCount, req.Language,
		req.TotalCopies, req.ShelfLocation)
	created, err := uc.bookService.AddBook(ctx, b)
	if err != nil {
		return nil, err
	}

	// 3. 可选: 发布上架事件(失败只记日志)
	if uc.publisher != nil {
		event, err := mq.NewEvent("book.added", BookAddedEvent{
			BookID: created.ID,
			ISBN:   created.ISBN,
			Title:  created.Title,
			Author: created.Author,
		})
		if err == nil {
			if err := uc.publisher.Publish(ctx, "book.added", event); err != nil {
				log.Printf("发布图书上架事件失败: %v", err)
			}
		}
	}

	return created, nil
}

// fillFromMetadata 用外部书目数据补全请求里的空缺字段
// 馆员手工填写的值优先，不被外部数据覆盖
func fillFromMetadata(req *AddBookRequest, meta *metadata.BookMetadata) {
	if req.Title == "" {
		req.Title = meta.Title
	}
	if req.Author == "" {
		req.Author = meta.Authors
	}
	if req.Publisher == "" {
		req.Publisher = meta.Publisher
	}
	if req.PublicationYear == nil {
		req.PublicationYear = meta.PublicationYear
	}
	if req.Category == "" {
		req.Category = meta.Category
	}
	if req.Description == "" {
		req.Description = meta.Description
	}
	if req.CoverImageURL == "" {
		req.CoverImageURL = meta.CoverImageURL
	}
	if req.PageCount == 0 {
		req.PageCount = meta.PageCount
	}
	if req.Language == "" {
		req.Language = meta.Language
	}
}
