package service

import (
	"context"
	"github.com/limchewyew/CompanyDirectory/internal/mail"
	"github.com/limchewyew/CompanyDirectory/internal/model"
	"github.com/limchewyew/CompanyDirectory/pkg/logger"
	"go.uber.org/zap"
)

type EnquiryService struct {
	sender mail.Sender
}

func NewEnquiryService() *EnquiryService {
	return &EnquiryService{}
}

func (e *EnquiryService) Send(ctx context.Context, enquiry *model.Enquiry) *Error {
	l := logger.FromContext(ctx)

	if err := e.sender.SendEnquiry(ctx, enquiry); err != nil {
		l.Error("failed to send enquiry", zap.String("from", enquiry.Email), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to send enquiry")
	}

	l.Info("enquiry sent", zap.String("from", enquiry.Email))
	return nil
}

func (e *EnquiryService) WithSender(sender mail.Sender) *EnquiryService {
	e.sender = sender
	return e
}
