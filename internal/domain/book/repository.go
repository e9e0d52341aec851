package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口，infrastructure层实现，便于Mock测试
type Repository interface {
	// Create 创建图书，ISBN冲突时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateFields 部分更新，只修改params中非nil的字段
	UpdateFields(ctx context.Context, id uint, params UpdateParams) error

	// Delete 删除图书
	// 存在关联借阅或书评记录时返回ErrBookReferenced
	Delete(ctx context.Context, id uint) error

	// List 查询全部图书，按ID升序
	List(ctx context.Context) ([]*Book, error)

	// Search 按字段做大小写不敏感的子串匹配
	// field=SearchByAny时在title/author/isbn上做OR匹配
	Search(ctx context.Context, term string, field SearchField) ([]*Book, error)

	// MostBorrowed 按关联借阅记录数降序排名，并列时按ID升序(插入顺序)
	MostBorrowed(ctx context.Context, limit int) ([]*PopularBook, error)

	// AdjustAvailable 原子调整可借副本数(delta为±1)
	// 约束 0 <= available_copies + delta <= total_copies 由UPDATE条件保证，
	// 条件不满足时不产生任何修改。仅供流通(借出/归还)事务内调用。
	AdjustAvailable(ctx context.Context, id uint, delta int) error
}
