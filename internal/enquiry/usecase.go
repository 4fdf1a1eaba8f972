package enquiry

import (
	"context"

	"github.com/fekuna/omnipos-directory-service/internal/enquiry/dto"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

type UseCase interface {
	CreateEnquiry(ctx context.Context, input *dto.CreateEnquiryInput) (*model.Enquiry, error)
	GetEnquiry(ctx context.Context, id string) (*model.Enquiry, error)
	ListEnquiries(ctx context.Context) ([]model.Enquiry, error)
	UpdateEnquiry(ctx context.Context, input *dto.UpdateEnquiryInput) (*model.Enquiry, error)
	DeleteEnquiry(ctx context.Context, id string) error
}
