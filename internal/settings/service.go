package settings

import (
	"context"
	"fmt"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
	pkgerrors "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/errors"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
)

const (
	MsgNotConfigured = "Business settings not configured"
	MsgSaved         = "Business settings saved successfully"
)

type Service interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Upsert(ctx context.Context, req UpsertRequest) (*SaveResult, error)
}

type settingsRepository interface {
	Get(ctx context.Context) (*models.BusinessSettings, error)
	Upsert(ctx context.Context, values *models.BusinessSettings) (*models.BusinessSettings, error)
}

type service struct {
	repo settingsRepository
	logg *logger.Logger
}

func NewService(repo settingsRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context) (*SettingsDTO, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgNotConfigured)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load business settings")
	}
	out := fromModel(row)
	return &out, nil
}

func (s *service) Upsert(ctx context.Context, req UpsertRequest) (*SaveResult, error) {
	saved, err := s.repo.Upsert(ctx, req.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save business settings")
	}
	s.logg.Info(s.logg.WithField(ctx, "settings_id", saved.ID.String()), "settings.saved")
	return &SaveResult{Message: MsgSaved, Settings: fromModel(saved)}, nil
}
