package service

import (
	"keepnotes/internal/contract"
	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type LabelRepository interface {
	FindByUser(userID int) ([]*entity.Label, error)
	FindByID(userID, labelID int) (*entity.Label, error)
	ExistsByName(name string) (bool, error)
	Save(label *entity.Label) error
}

type LabelService struct {
	LabelRepo LabelRepository
	Validate  *validator.Validate
}

func NewLabelService(labelRepo LabelRepository, validate *validator.Validate) *LabelService {
	return &LabelService{
		LabelRepo: labelRepo,
		Validate:  validate,
	}
}

func (l *LabelService) GetLabels(actor *entity.Account) ([]*contract.LabelResponse, apierror.ErrorResponse) {
	labels, err := l.LabelRepo.FindByUser(actor.ID)
	if err != nil {
		log.Errorf("failed to fetch labels: %v", err)
		return nil, apierror.UnexpectedError
	}

	resp := make([]*contract.LabelResponse, len(labels))
	for i, label := range labels {
		resp[i] = toLabelResponse(label)
	}
	return resp, nil
}

func (l *LabelService) GetLabel(actor *entity.Account, labelID int) (*contract.LabelResponse, apierror.ErrorResponse) {
	label, err := l.LabelRepo.FindByID(actor.ID, labelID)
	if err != nil {
		log.Errorf("failed to fetch label: %v", err)
		return nil, apierror.UnexpectedError
	}
	if label == nil {
		return nil, apierror.LabelNotFoundError
	}
	return toLabelResponse(label), nil
}

func (l *LabelService) CreateLabel(actor *entity.Account, req *contract.LabelRequest) (*contract.LabelResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := l.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	// Names are unique across all owners. The check includes soft-deleted
	// labels since the unique index still holds their names.
	exists, err := l.LabelRepo.ExistsByName(req.Name)
	if err != nil {
		log.Errorf("failed to check label name: %v", err)
		return nil, apierror.UnexpectedError
	}
	if exists {
		return nil, apierror.DuplicateLabelError
	}

	now := utils.NowUTC()
	label := &entity.Label{
		Name:      req.Name,
		UserID:    actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.LabelRepo.Save(label); err != nil {
		log.Errorf("failed to create label: %v", err)
		return nil, apierror.UnexpectedError
	}

	log.Infof("created label %d for account %d", label.ID, actor.ID)
	return toLabelResponse(label), nil
}

func (l *LabelService) UpdateLabel(actor *entity.Account, labelID int, req *contract.UpdateLabelRequest) (*contract.LabelResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := l.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	label, err := l.LabelRepo.FindByID(actor.ID, labelID)
	if err != nil {
		log.Errorf("failed to fetch label: %v", err)
		return nil, apierror.UnexpectedError
	}
	if label == nil {
		return nil, apierror.LabelNotFoundError
	}

	if req.Name != nil && *req.Name != label.Name {
		exists, err := l.LabelRepo.ExistsByName(*req.Name)
		if err != nil {
			log.Errorf("failed to check label name: %v", err)
			return nil, apierror.UnexpectedError
		}
		if exists {
			return nil, apierror.DuplicateLabelError
		}
		label.Name = *req.Name
	}

	label.UpdatedAt = utils.NowUTC()
	if err := l.LabelRepo.Save(label); err != nil {
		log.Errorf("failed to update label: %v", err)
		return nil, apierror.UnexpectedError
	}
	return toLabelResponse(label), nil
}

// DeleteLabel soft-deletes; a second delete finds nothing and returns 404.
func (l *LabelService) DeleteLabel(actor *entity.Account, labelID int) apierror.ErrorResponse {
	label, err := l.LabelRepo.FindByID(actor.ID, labelID)
	if err != nil {
		log.Errorf("failed to fetch label: %v", err)
		return apierror.UnexpectedError
	}
	if label == nil {
		return apierror.LabelNotFoundError
	}

	label.SoftDelete()
	label.UpdatedAt = utils.NowUTC()
	if err := l.LabelRepo.Save(label); err != nil {
		log.Errorf("failed to delete label: %v", err)
		return apierror.UnexpectedError
	}

	log.Infof("soft-deleted label %d for account %d", label.ID, actor.ID)
	return nil
}

func toLabelResponse(label *entity.Label) *contract.LabelResponse {
	return &contract.LabelResponse{
		ID:        label.ID,
		UserID:    label.UserID,
		Name:      label.Name,
		CreatedAt: utils.FormatEpoch(label.CreatedAt),
		UpdatedAt: utils.FormatEpoch(label.UpdatedAt),
	}
}
