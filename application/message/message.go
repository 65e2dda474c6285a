package message

import (
	"context"
	stderrors "errors"

	"github.com/greengarden/greenery/constant"
	"github.com/greengarden/greenery/model"
	messagerepo "github.com/greengarden/greenery/repository/message"
	"github.com/greengarden/greenery/utils/errors"
	"github.com/greengarden/greenery/utils/logger"
	"go.uber.org/zap"
)

// MessageApp is the admin inbox: authenticated users write in, admins read
// and clean up.
type MessageApp interface {
	Send(ctx context.Context, req *model.SendMessageRequest, senderID uint64) (*model.MessageEntity, error)
	List(ctx context.Context, viewer model.Viewer) ([]model.MessageEntity, error)
	Delete(ctx context.Context, id uint64, viewer model.Viewer) error
}

type messageAppImpl struct {
	messageRepo messagerepo.MessageRepository
}

func NewMessageApp(messageRepo messagerepo.MessageRepository) MessageApp {
	return &messageAppImpl{messageRepo: messageRepo}
}

func (s *messageAppImpl) Send(ctx context.Context, req *model.SendMessageRequest, senderID uint64) (*model.MessageEntity, error) {
	if senderID == 0 {
		return nil, errors.SetCustomError(constant.ErrUnauthorize)
	}

	entity := &model.MessageEntity{
		SenderID: senderID,
		Name:     req.Name,
		Email:    req.Email,
		Body:     req.Body,
	}

	entity, err := s.messageRepo.Insert(ctx, entity)
	if err != nil {
		logger.Error("[Send] error messageRepo.Insert", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return entity, nil
}

func (s *messageAppImpl) List(ctx context.Context, viewer model.Viewer) ([]model.MessageEntity, error) {
	if !viewer.IsAdmin() {
		return nil, errors.SetCustomError(constant.ErrOwnership)
	}

	items, err := s.messageRepo.List(ctx)
	if err != nil {
		logger.Error("[List] error messageRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return items, nil
}

func (s *messageAppImpl) Delete(ctx context.Context, id uint64, viewer model.Viewer) error {
	if !viewer.IsAdmin() {
		return errors.SetCustomError(constant.ErrOwnership)
	}

	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, errors.ErrNoRowsAffected) {
			return errors.SetCustomError(constant.ErrNoEffect)
		}
		logger.Error("[Delete] error messageRepo.Delete", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
