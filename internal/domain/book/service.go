package book

import (
	"context"
	"regexp"
	"strings"
)

// Service 图书领域服务接口
type Service interface {
	// AddBook 新增图书(编目)
	// 业务规则:
	// - ISBN非空时格式必须合法(10位或13位数字)，且不能重复
	// - 书名、作者必填
	// - 副本数total>=1
	AddBook(ctx context.Context, b *Book) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 部分更新图书信息，只修改提供的字段
	// 业务规则: 副本数修改必须保持 0<=available<=total
	UpdateBook(ctx context.Context, id uint, params UpdateParams) error

	// DeleteBook 删除图书(存在借阅/书评记录时拒绝)
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 查询全部图书
	ListBooks(ctx context.Context) ([]*Book, error)

	// SearchBooks 检索图书
	SearchBooks(ctx context.Context, term string, field SearchField) ([]*Book, error)

	// MostBorrowed 热门图书排行
	MostBorrowed(ctx context.Context, limit int) ([]*PopularBook, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新增图书
func (s *service) AddBook(ctx context.Context, b *Book) (*Book, error) {
	// 1. ISBN格式校验(可为空)
	if b.ISBN != "" && !IsValidISBN(b.ISBN) {
		return nil, ErrInvalidISBN
	}

	// 2. 必填字段校验
	if strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "" {
		return nil, ErrTitleAuthorRequired
	}

	// 3. 副本数校验
	if b.TotalCopies < 1 || b.AvailableCopies < 0 || b.AvailableCopies > b.TotalCopies {
		return nil, ErrInvalidCopies
	}

	// 4. 持久化(ISBN唯一性由数据库索引保证，Repository转换为ErrISBNDuplicate)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if !IsValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 部分更新图书信息
func (s *service) UpdateBook(ctx context.Context, id uint, params UpdateParams) error {
	if params.Empty() {
		return nil
	}

	if params.ISBN != nil && *params.ISBN != "" && !IsValidISBN(*params.ISBN) {
		return ErrInvalidISBN
	}

	// 副本数联合校验: 未提供的一侧取当前值
	if params.TotalCopies != nil || params.AvailableCopies != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		total := current.TotalCopies
		available := current.AvailableCopies
		if params.TotalCopies != nil {
			total = *params.TotalCopies
		}
		if params.AvailableCopies != nil {
			available = *params.AvailableCopies
		}
		if total < 1 || available < 0 || available > total {
			return ErrInvalidCopies
		}
	}

	return s.repo.UpdateFields(ctx, id, params)
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ListBooks 查询全部图书
func (s *service) ListBooks(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

// SearchBooks 检索图书
func (s *service) SearchBooks(ctx context.Context, term string, field SearchField) ([]*Book, error) {
	if field == "" {
		field = SearchByTitle
	}
	if !field.Valid() {
		return nil, ErrInvalidSearchField
	}
	return s.repo.Search(ctx, term, field)
}

// MostBorrowed 热门图书排行
func (s *service) MostBorrowed(ctx context.Context, limit int) ([]*PopularBook, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.MostBorrowed(ctx, limit)
}

// isbnDigits 去除分隔符后的ISBN数字
var isbnDigits = regexp.MustCompile(`[^0-9Xx]`)

// IsValidISBN 校验ISBN格式
// 支持ISBN-10(末位允许X)和ISBN-13，只检查位数(不校验校验位)
func IsValidISBN(isbn string) bool {
	clean := isbnDigits.ReplaceAllString(isbn, "")
	length := len(clean)
	return length == 10 || length == 13
}
