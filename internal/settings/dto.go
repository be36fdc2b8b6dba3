package settings

import (
	"strings"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db/models"
)

// UpsertRequest is the body accepted by PUT /settings/business.
type UpsertRequest struct {
	BusinessName        string  `json:"business_name" validate:"required,min=2,max=255"`
	BusinessAddress     string  `json:"business_address" validate:"required,min=5"`
	BusinessPhoneNumber string  `json:"business_phone_number" validate:"required,min=8,max=20"`
	BusinessEmail       *string `json:"business_email,omitempty" validate:"omitempty,email,max=255"`
	GSTNumber           *string `json:"gst_number,omitempty" validate:"omitempty,max=20"`
	UPIID               string  `json:"upi_id" validate:"required,max=50"`
	UPIQRImage          string  `json:"upi_qr_image" validate:"required,max=512"`
}

func (r UpsertRequest) toModel() *models.BusinessSettings {
	return &models.BusinessSettings{
		BusinessName:        strings.TrimSpace(r.BusinessName),
		BusinessAddress:     strings.TrimSpace(r.BusinessAddress),
		BusinessPhoneNumber: strings.TrimSpace(r.BusinessPhoneNumber),
		BusinessEmail:       r.BusinessEmail,
		GSTNumber:           r.GSTNumber,
		UPIID:               strings.TrimSpace(r.UPIID),
		UPIQRImage:          strings.TrimSpace(r.UPIQRImage),
	}
}

// SettingsDTO is the public projection of the business profile.
type SettingsDTO struct {
	ID                  string  `json:"id"`
	BusinessName        string  `json:"business_name"`
	BusinessAddress     string  `json:"business_address"`
	BusinessPhoneNumber string  `json:"business_phone_number"`
	BusinessEmail       *string `json:"business_email"`
	GSTNumber           *string `json:"gst_number"`
	UPIID               string  `json:"upi_id"`
	UPIQRImage          string  `json:"upi_qr_image"`
}

type SaveResult struct {
	Message  string      `json:"message"`
	Settings SettingsDTO `json:"settings"`
}

func fromModel(m *models.BusinessSettings) SettingsDTO {
	return SettingsDTO{
		ID:                  m.ID.String(),
		BusinessName:        m.BusinessName,
		BusinessAddress:     m.BusinessAddress,
		BusinessPhoneNumber: m.BusinessPhoneNumber,
		BusinessEmail:       m.BusinessEmail,
		GSTNumber:           m.GSTNumber,
		UPIID:               m.UPIID,
		UPIQRImage:          m.UPIQRImage,
	}
}
