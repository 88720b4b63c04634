// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ecodeclub/mockly/internal/interview/internal/domain"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrRecordNotFound = gorm.ErrRecordNotFound

type CompletedInterviewDAO interface {
	Create(ctx context.Context, c CompletedInterview) (int64, error)
	// FindByUid 按完成时间倒序
	FindByUid(ctx context.Context, uid int64, limit int) ([]CompletedInterview, error)
	// FindById 非本人的记录一律当成不存在
	FindById(ctx context.Context, id, uid int64) (CompletedInterview, error)
}

type GORMCompletedInterviewDAO struct {
	db *egorm.Component
}

func NewGORMCompletedInterviewDAO(db *egorm.Component) CompletedInterviewDAO {
	return &GORMCompletedInterviewDAO{db: db}
}

func (d *GORMCompletedInterviewDAO) Create(ctx context.Context, c CompletedInterview) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime = now
	c.Utime = now
	err := d.db.WithContext(ctx).Create(&c).Error
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			// 同一个会话重复收尾，直接返回已有记录
			var existing CompletedInterview
			err = d.db.WithContext(ctx).Model(&CompletedInterview{}).
				Where("sid = ?", c.Sid).First(&existing).Error
			return existing.Id, err
		}
	}
	return c.Id, err
}

func (d *GORMCompletedInterviewDAO) FindByUid(ctx context.Context, uid int64, limit int) ([]CompletedInterview, error) {
	var res []CompletedInterview
	err := d.db.WithContext(ctx).Model(&CompletedInterview{}).
		Where("uid = ?", uid).
		Order("completed_at DESC").
		Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *GORMCompletedInterviewDAO) FindById(ctx context.Context, id, uid int64) (CompletedInterview, error) {
	var res CompletedInterview
	err := d.db.WithContext(ctx).Model(&CompletedInterview{}).
		Where("id = ? AND uid = ?", id, uid).
		First(&res).Error
	return res, err
}

type CompletedInterview struct {
	Id                  int64                                   `gorm:"primaryKey;autoIncrement"`
	Uid                 int64                                   `gorm:"not null;index:idx_uid_completed_at,priority:1;comment:用户ID"`
	Sid                 string                                  `gorm:"type:varchar(256);not null;uniqueIndex:unq_sid;comment:会话ID"`
	CandidateName       string                                  `gorm:"type:varchar(256);not null"`
	TargetRole          string                                  `gorm:"type:varchar(256);not null"`
	ExperienceLevel     string                                  `gorm:"type:varchar(64);not null"`
	TechStack           sqlx.JsonColumn[[]string]               `gorm:"type:text"`
	TotalScore          int                                     `gorm:"type:int;not null;comment:各分项的均值，保存时重新计算"`
	CategoryScores      sqlx.JsonColumn[[]domain.CategoryScore] `gorm:"type:text"`
	Strengths           sqlx.JsonColumn[[]string]               `gorm:"type:text"`
	AreasForImprovement sqlx.JsonColumn[[]string]               `gorm:"type:text"`
	FinalAssessment     string                                  `gorm:"type:text"`
	ConversationHistory sqlx.JsonColumn[[]domain.Message]       `gorm:"type:longtext;comment:完整对话记录"`
	Duration            int64                                   `gorm:"type:int;default:0;comment:时长，分钟"`
	CompletedAt         int64                                   `gorm:"not null;index:idx_uid_completed_at,priority:2"`
	Ctime               int64
	Utime               int64
}

func (c CompletedInterview) TableName() string {
	return "completed_interviews"
}
