package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/member"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// memberRepository 会员仓储实现(MySQL)
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository 创建会员仓储
func NewMemberRepository(db *gorm.DB) member.Repository {
	return &memberRepository{db: db}
}

// Create 创建会员
// 唯一冲突时区分邮箱与借书证号，调用方对证号冲突会重新生成再试
func (r *memberRepository) Create(ctx context.Context, m *member.Member) error {
	model := toMemberModel(m)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateOn(err, "email") {
			return member.ErrEmailDuplicate
		}
		if isDuplicateOn(err, "membership_number") {
			return member.ErrMembershipNumberDuplicate
		}
		if isDuplicateError(err) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(err, "创建会员失败")
	}

	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找会员
func (r *memberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}

	return toMemberEntity(&model), nil
}

// FindByEmail 根据邮箱查找会员
func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}

	return toMemberEntity(&model), nil
}

// FindByMembershipNumber 根据借书证号查找会员
func (r *memberRepository) FindByMembershipNumber(ctx context.Context, number string) (*member.Member, error) {
	var model MemberModel
	err := getDB(ctx, r.db).Where("membership_number = ?", number).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, member.ErrMemberNotFound
		}
		return nil, apperrors.Wrap(err, "查询会员失败")
	}

	return toMemberEntity(&model), nil
}

// UpdateFields 部分更新会员
func (r *memberRepository) UpdateFields(ctx context.Context, id uint, params member.UpdateParams) error {
	updates := map[string]interface{}{}

	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Email != nil {
		updates["email"] = *params.Email
	}
	if params.Phone != nil {
		updates["phone"] = *params.Phone
	}
	if params.Address != nil {
		updates["address"] = *params.Address
	}
	if params.Status != nil {
		updates["status"] = string(*params.Status)
	}

	if len(updates) == 0 {
		return nil
	}

	result := getDB(ctx, r.db).Model(&MemberModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return member.ErrEmailDuplicate
		}
		return apperrors.Wrap(result.Error, "更新会员失败")
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := getDB(ctx, r.db).Model(&MemberModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询会员失败")
		}
		if count == 0 {
			return member.ErrMemberNotFound
		}
	}

	return nil
}

// List 查询全部会员(姓名排序)
func (r *memberRepository) List(ctx context.Context) ([]*member.Member, error) {
	var models []MemberModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询会员列表失败")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// Search 按姓名/邮箱/借书证号模糊检索
func (r *memberRepository) Search(ctx context.Context, term string) ([]*member.Member, error) {
	pattern := "%" + term + "%"

	var models []MemberModel
	err := getDB(ctx, r.db).
		Where("name LIKE ? OR email LIKE ? OR membership_number LIKE ?", pattern, pattern, pattern).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "检索会员失败")
	}

	members := make([]*member.Member, len(models))
	for i := range models {
		members[i] = toMemberEntity(&models[i])
	}
	return members, nil
}

// BorrowHistory 会员借阅历史(含图书冗余信息)，借出时间倒序
func (r *memberRepository) BorrowHistory(ctx context.Context, memberID uint) ([]*member.BorrowRecord, error) {
	type row struct {
		LoanID     uint
		BookID     uint
		BookTitle  string
		BookAuthor string
		IssuedAt   time.Time
		DueAt      time.Time
		ReturnedAt *time.Time
		FineCents  int64
		Status     string
	}

	var rows []row
	err := getDB(ctx, r.db).Model(&LoanModel{}).
		Select(`loans.id AS loan_id, loans.book_id, books.title AS book_title,
			books.author AS book_author, loans.issued_at, loans.due_at,
			loans.returned_at, loans.fine_cents, loans.status`).
		Joins("JOIN books ON books.id = loans.book_id").
		Where("loans.member_id = ?", memberID).
		Order("loans.issued_at DESC, loans.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅历史失败")
	}

	records := make([]*member.BorrowRecord, len(rows))
	for i, r := range rows {
		records[i] = &member.BorrowRecord{
			LoanID:     r.LoanID,
			BookID:     r.BookID,
			BookTitle:  r.BookTitle,
			BookAuthor: r.BookAuthor,
			IssuedAt:   r.IssuedAt,
			DueAt:      r.DueAt,
			ReturnedAt: r.ReturnedAt,
			FineCents:  r.FineCents,
			Status:     r.Status,
		}
	}
	return records, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toMemberModel(m *member.Member) *MemberModel {
	return &MemberModel{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Phone:            m.Phone,
		Address:          m.Address,
		MembershipNumber: m.MembershipNumber,
		Status:           string(m.Status),
		JoinedAt:         m.JoinedAt,
	}
}

func toMemberEntity(model *MemberModel) *member.Member {
	return &member.Member{
		ID:               model.ID,
		Name:             model.Name,
		Email:            model.Email,
		Phone:            model.Phone,
		Address:          model.Address,
		MembershipNumber: model.MembershipNumber,
		Status:           member.Status(model.Status),
		JoinedAt:         model.JoinedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
