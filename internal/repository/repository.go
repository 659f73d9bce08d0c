package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Migrate 建表；外键与级联规则来自模型上的 constraint 标签
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Group{}, &model.Post{}, &model.Comment{}, &model.Follow{})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
