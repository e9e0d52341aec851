package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/infrastructure/metadata"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// LookupBookUseCase 外部书目查询用例(编目前预览)
type LookupBookUseCase struct {
	metadata *metadata.Client
}

// NewLookupBookUseCase 创建查询用例
func NewLookupBookUseCase(metadataClient *metadata.Client) *LookupBookUseCase {
	return &LookupBookUseCase{metadata: metadataClient}
}

// Execute 按ISBN查询外部书目数据
// 功能未启用返回ErrExternalService；未命中返回(nil, nil)
func (uc *LookupBookUseCase) Execute(ctx context.Context, isbn string) (*metadata.BookMetadata, error) {
	if uc.metadata == nil {
		return nil, apperrors.ErrExternalService
	}
	if !book.IsValidISBN(isbn) {
		return nil, book.ErrInvalidISBN
	}
	return uc.metadata.FetchByISBN(ctx, isbn)
}

// Search 按关键词检索外部书目数据
// 功能未启用返回ErrExternalService；未命中返回空切片
func (uc *LookupBookUseCase) Search(ctx context.Context, query string, max int) ([]*metadata.BookMetadata, error) {
	if uc.metadata == nil {
		return nil, apperrors.ErrExternalService
	}
	return uc.metadata.Search(ctx, query, max)
}
