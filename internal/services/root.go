package services

import (
	"github.com/crafthub/crafthub-backend/internal/services/account"
	"github.com/crafthub/crafthub-backend/internal/services/comment"
	"github.com/crafthub/crafthub-backend/internal/services/content"
	"github.com/crafthub/crafthub-backend/internal/services/notify"
	"github.com/crafthub/crafthub-backend/internal/services/storage"
)

func InitAllServices() {
	storage.InitStorageService()
	account.InitAccountService()
	notify.InitNotifyService()
	content.InitContentService()
}

func ShutdownAllServices() error {

	if err := content.ShutdownContentService(); err != nil {
		return err
	}

	if err := comment.ShutdownCommentService(); err != nil {
		return err
	}

	if err := notify.ShutdownNotifyService(); err != nil {
		return err
	}

	if err := account.ShutdownAccountService(); err != nil {
		return err
	}

	return nil
}
