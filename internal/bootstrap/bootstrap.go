package bootstrap

import (
	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.MovieSnapshot{},
		&entity.Review{},
		&entity.Comment{},
		&entity.LikeEdge{},
		&entity.NotificationType{},
		&entity.NotificationTemplate{},
		&entity.Notification{},
		&entity.NotificationRecipient{},
	)
}

// SeedNotificationCatalog inserts the fixed type and template rows the
// notification pipeline references by id. Existing rows are left alone so
// re-running startup never rewrites live templates.
func SeedNotificationCatalog(db *gorm.DB) error {
	types := []entity.NotificationType{
		{ID: 1, Name: "login"},
		{ID: 2, Name: "review_comment"},
		{ID: 3, Name: "review_like"},
	}

	for _, t := range types {
		var count int64
		if err := db.Model(&entity.NotificationType{}).
			Where("id = ?", t.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&t).Error; err != nil {
				return err
			}
		}
	}

	movieURL := "/movies/{movieId}"
	templates := []entity.NotificationTemplate{
		{
			ID:              entity.TemplateLogin,
			TypeID:          1,
			MessageTemplate: "로그인되었습니다. 환영합니다!",
		},
		{
			ID:              entity.TemplateReviewComment,
			TypeID:          2,
			MessageTemplate: "!{username}님이 회원님의 리뷰에 댓글을 남겼습니다",
			URLTemplate:     &movieURL,
		},
		{
			ID:              entity.TemplateReviewLike,
			TypeID:          3,
			MessageTemplate: "!{username}님이 회원님의 리뷰를 좋아합니다",
			URLTemplate:     &movieURL,
		},
	}

	for _, tpl := range templates {
		var count int64
		if err := db.Model(&entity.NotificationTemplate{}).
			Where("id = ?", tpl.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&tpl).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
