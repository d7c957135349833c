package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories is the LIMS repository collection.
type Repositories struct {
	User          *UserRepository
	Assignment    *AssignmentRepository
	InspectionLog *InspectionLogRepository
	Order         *OrderRepository
	Document      *DocumentRepository
	Template      *TemplateRepository
	Equipment     *EquipmentRepository
}

// NewRepositories wires every repository onto one gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Assignment:    NewAssignmentRepository(db),
		InspectionLog: NewInspectionLogRepository(db),
		Order:         NewOrderRepository(db),
		Document:      NewDocumentRepository(db),
		Template:      NewTemplateRepository(db),
		Equipment:     NewEquipmentRepository(db),
	}
}
