package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复)，转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// UpdateFields 部分更新图书
// 只写入params中非nil的字段，避免零值覆盖
func (r *bookRepository) UpdateFields(ctx context.Context, id uint, params book.UpdateParams) error {
	updates := map[string]interface{}{}

	if params.ISBN != nil {
		if *params.ISBN == "" {
			updates["isbn"] = nil
		} else {
			updates["isbn"] = *params.ISBN
		}
	}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Author != nil {
		updates["author"] = *params.Author
	}
	if params.Publisher != nil {
		updates["publisher"] = *params.Publisher
	}
	if params.PublicationYear != nil {
		updates["publication_year"] = *params.PublicationYear
	}
	if params.Category != nil {
		updates["category"] = *params.Category
	}
	if params.Language != nil {
		updates["language"] = *params.Language
	}
	if params.PageCount != nil {
		updates["page_count"] = *params.PageCount
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.CoverImageURL != nil {
		updates["cover_url"] = *params.CoverImageURL
	}
	if params.ShelfLocation != nil {
		updates["shelf_location"] = *params.ShelfLocation
	}
	if params.TotalCopies != nil {
		updates["total_copies"] = *params.TotalCopies
	}
	if params.AvailableCopies != nil {
		updates["available_copies"] = *params.AvailableCopies
	}

	if len(updates) == 0 {
		return nil
	}

	result := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		// Updates对不存在的行不报错，需要显式确认
		var count int64
		if err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询图书失败")
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
	}

	return nil
}

// Delete 删除图书
// 存在借阅或书评记录时拒绝删除，保护历史数据完整性
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	var loanCount int64
	if err := db.Model(&LoanModel{}).Where("book_id = ?", id).Count(&loanCount).Error; err != nil {
		return apperrors.Wrap(err, "查询借阅记录失败")
	}
	var reviewCount int64
	if err := db.Model(&ReviewModel{}).Where("book_id = ?", id).Count(&reviewCount).Error; err != nil {
		return apperrors.Wrap(err, "查询书评记录失败")
	}
	if loanCount > 0 || reviewCount > 0 {
		return book.ErrBookReferenced
	}

	result := db.Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// List 查询全部图书(书名排序)
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := getDB(ctx, r.db).Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// Search 检索图书
func (r *bookRepository) Search(ctx context.Context, term string, field book.SearchField) ([]*book.Book, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})
	pattern := "%" + term + "%"

	switch field {
	case book.SearchByTitle:
		query = query.Where("title LIKE ?", pattern)
	case book.SearchByAuthor:
		query = query.Where("author LIKE ?", pattern)
	case book.SearchByISBN:
		query = query.Where("isbn LIKE ?", pattern)
	case book.SearchByCategory:
		query = query.Where("category LIKE ?", pattern)
	case book.SearchByAny:
		query = query.Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?",
			pattern, pattern, pattern)
	default:
		return nil, book.ErrInvalidSearchField
	}

	var models []BookModel
	if err := query.Order("title ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "检索图书失败")
	}
	return toBookEntities(models), nil
}

// MostBorrowed 热门图书排行(按历史借阅次数降序)
// LEFT JOIN保证零借阅的图书也上榜(borrow_count=0)
func (r *bookRepository) MostBorrowed(ctx context.Context, limit int) ([]*book.PopularBook, error) {
	type row struct {
		BookModel
		BorrowCount int64
	}

	var rows []row
	err := getDB(ctx, r.db).Model(&BookModel{}).
		Select("books.*, COUNT(loans.id) AS borrow_count").
		Joins("LEFT JOIN loans ON loans.book_id = books.id").
		Group("books.id").
		Order("borrow_count DESC, books.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询热门图书失败")
	}

	popular := make([]*book.PopularBook, len(rows))
	for i := range rows {
		popular[i] = &book.PopularBook{
			Book:        *toBookEntity(&rows[i].BookModel),
			BorrowCount: rows[i].BorrowCount,
		}
	}
	return popular, nil
}

// AdjustAvailable 原子调整可借副本数
// UPDATE books SET available_copies = available_copies + delta
// WHERE id = ? AND available_copies + delta BETWEEN 0 AND total_copies
// RowsAffected为0说明图书不存在或副本数越界
func (r *bookRepository) AdjustAvailable(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("available_copies + ? >= 0", delta).
		Where("available_copies + ? <= total_copies", delta).
		Update("available_copies", gorm.Expr("available_copies + ?", delta))

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新可借副本失败")
	}

	if result.RowsAffected == 0 {
		// 可能是图书不存在，或者副本数越界，再查一次确定原因
		var model BookModel
		if err := db.First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "查询图书失败")
		}
		if delta < 0 {
			return book.ErrNoAvailableCopies
		}
		return book.ErrInvalidCopies
	}

	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	var isbn *string
	if b.ISBN != "" {
		v := b.ISBN
		isbn = &v
	}
	return &BookModel{
		ID:              b.ID,
		ISBN:            isbn,
		Title:           b.Title,
		Author:          b.Author,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		Category:        b.Category,
		Language:        b.Language,
		PageCount:       b.PageCount,
		Description:     b.Description,
		CoverURL:        b.CoverImageURL,
		ShelfLocation:   b.ShelfLocation,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	isbn := ""
	if model.ISBN != nil {
		isbn = *model.ISBN
	}
	return &book.Book{
		ID:              model.ID,
		ISBN:            isbn,
		Title:           model.Title,
		Author:          model.Author,
		Publisher:       model.Publisher,
		PublicationYear: model.PublicationYear,
		Category:        model.Category,
		Language:        model.Language,
		PageCount:       model.PageCount,
		Description:     model.Description,
		CoverImageURL:   model.CoverURL,
		ShelfLocation:   model.ShelfLocation,
		TotalCopies:     model.TotalCopies,
		AvailableCopies: model.AvailableCopies,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
