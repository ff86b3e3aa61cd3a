// AngelaMos | 2026
// dto.go

package asset

import (
	"strings"

	"github.com/carterperez-dev/asset-portal/internal/core"
)

// Fields are the descriptive attributes an update rewrites. All are required.
type Fields struct {
	EmployeeName     string `json:"employee_name"     validate:"required,max=500"`
	Email            string `json:"email_id"          validate:"required,max=500"`
	Location         string `json:"location"          validate:"required,max=500"`
	Hostname         string `json:"hostname"          validate:"required,max=500"`
	Processor        string `json:"processor"         validate:"required,max=500"`
	RAM              string `json:"ram"               validate:"required,max=500"`
	HDSize           string `json:"hd_size"           validate:"required,max=500"`
	Mouse            string `json:"mouse"             validate:"required,max=500"`
	Adaptor          string `json:"adaptor"           validate:"required,max=500"`
	Headset          string `json:"headset"           validate:"required,max=500"`
	Monitor          string `json:"monitor"           validate:"required,max=500"`
	ITOthers         string `json:"it_others"         validate:"required,max=500"`
	SoftwareLicenses string `json:"software_licenses" validate:"required,max=500"`
}

func (f *Fields) trim() {
	for _, p := range []*string{
		&f.EmployeeName, &f.Email, &f.Location, &f.Hostname,
		&f.Processor, &f.RAM, &f.HDSize, &f.Mouse, &f.Adaptor,
		&f.Headset, &f.Monitor, &f.ITOthers, &f.SoftwareLicenses,
	} {
		*p = strings.TrimSpace(*p)
	}
}

type CreateAssetRequest struct {
	EmployeeID string `json:"employee_id"      validate:"required,max=500"`
	EntryDate  string `json:"asset_entry_date" validate:"required"`
	Fields
}

type UpdateAssetRequest struct {
	Fields
}

type AssetResponse struct {
	ID               int64     `json:"id"`
	EmployeeName     string    `json:"employee_name"`
	EmployeeID       string    `json:"employee_id"`
	Email            string    `json:"email_id"`
	Location         string    `json:"location"`
	Hostname         string    `json:"hostname"`
	Processor        string    `json:"processor"`
	RAM              string    `json:"ram"`
	HDSize           string    `json:"hd_size"`
	Mouse            string    `json:"mouse"`
	Adaptor          string    `json:"adaptor"`
	Headset          string    `json:"headset"`
	Monitor          string    `json:"monitor"`
	ITOthers         string    `json:"it_others"`
	SoftwareLicenses string    `json:"software_licenses"`
	EntryDate        core.Date `json:"asset_entry_date"`
	EnteredBy        string    `json:"entered_by"`
	UpdatedBy        *string   `json:"updated_by"`
	UpdateDate       core.Date `json:"update_date"`
	RemoveDate       core.Date `json:"remove_date"`
	Active           bool      `json:"active"`
}

func ToAssetResponse(a *Asset) AssetResponse {
	resp := AssetResponse{
		ID:               a.ID,
		EmployeeName:     a.EmployeeName,
		EmployeeID:       a.EmployeeID,
		Email:            a.Email,
		Location:         a.Location,
		Hostname:         a.Hostname,
		Processor:        a.Processor,
		RAM:              a.RAM,
		HDSize:           a.HDSize,
		Mouse:            a.Mouse,
		Adaptor:          a.Adaptor,
		Headset:          a.Headset,
		Monitor:          a.Monitor,
		ITOthers:         a.ITOthers,
		SoftwareLicenses: a.SoftwareLicenses,
		EntryDate:        a.EntryDate,
		EnteredBy:        a.EnteredBy,
		UpdateDate:       a.UpdateDate,
		RemoveDate:       a.RemoveDate,
		Active:           a.IsActive(),
	}
	if a.UpdatedBy != "" {
		updatedBy := a.UpdatedBy
		resp.UpdatedBy = &updatedBy
	}
	return resp
}

func ToAssetResponseList(assets []Asset) []AssetResponse {
	responses := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		responses = append(responses, ToAssetResponse(&assets[i]))
	}
	return responses
}
