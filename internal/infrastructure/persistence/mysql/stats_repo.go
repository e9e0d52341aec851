package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/domain/stats"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// statsRepository 统计仓储实现(MySQL)
// 每个指标一条聚合查询，数据库做计算，应用层只拼装
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓储
func NewStatsRepository(db *gorm.DB) stats.Repository {
	return &statsRepository{db: db}
}

// Dashboard 馆藏运营总览
func (r *statsRepository) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	db := getDB(ctx, r.db)
	d := &stats.Dashboard{}

	if err := db.Model(&BookModel{}).Count(&d.TotalBooks).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计图书数失败")
	}

	var copies struct {
		Total     int64
		Available int64
	}
	err := db.Model(&BookModel{}).
		Select("COALESCE(SUM(total_copies), 0) AS total, COALESCE(SUM(available_copies), 0) AS available").
		Scan(&copies).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计副本数失败")
	}
	d.TotalCopies = copies.Total
	d.AvailableBooks = copies.Available

	if err := db.Model(&MemberModel{}).Count(&d.TotalMembers).Error; err != nil {
		return nil, apperrors.Wrap(err, "统计会员数失败")
	}

	err = db.Model(&MemberModel{}).
		Where("status = ?", string(member.StatusActive)).
		Count(&d.ActiveMembers).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计活跃会员数失败")
	}

	err = db.Model(&LoanModel{}).
		Where("status = ?", string(loan.StatusIssued)).
		Count(&d.BooksIssued).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计在借数失败")
	}

	err = db.Model(&LoanModel{}).
		Where("status = ? AND due_at < ?", string(loan.StatusIssued), loan.Midnight(time.Now())).
		Count(&d.OverdueBooks).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计逾期数失败")
	}

	var fines struct{ Total int64 }
	err = db.Model(&LoanModel{}).
		Select("COALESCE(SUM(fine_cents), 0) AS total").
		Where("status = ?", string(loan.StatusReturned)).
		Scan(&fines).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计罚金失败")
	}
	d.FinesCents = fines.Total

	return d, nil
}
