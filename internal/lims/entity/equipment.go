package entity

import "time"

// Equipment is a calibrated testing instrument referenced from criterion
// supplementary info.
type Equipment struct {
	ID                  string     `json:"id" gorm:"primaryKey;size:32"`
	Name                string     `json:"name" gorm:"size:200;not null"`
	Model               string     `json:"model" gorm:"size:100"`
	Manufacturer        string     `json:"manufacturer" gorm:"size:200"`
	Specifications      string     `json:"specifications" gorm:"type:text"`
	CalibrationNumber   string     `json:"calibration_number" gorm:"size:100"`
	CalibrationProvider string     `json:"calibration_provider" gorm:"size:200"`
	CalibrationExpiry   *time.Time `json:"calibration_expiry"`
	Certificates        StringList `json:"certificates" gorm:"type:jsonb"`
	Status              string     `json:"status" gorm:"size:20;default:active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (Equipment) TableName() string {
	return "lims_equipment"
}

const (
	EquipmentStatusActive      = "active"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusExpired     = "expired"
)
