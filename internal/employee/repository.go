package employee

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports an employee id with no matching row.
	ErrNotFound = errors.New("employee not found")
	// ErrAdvanceNotFound reports a date with no advance recorded.
	ErrAdvanceNotFound = errors.New("advance record not found")
)

type Repository interface {
	Save(db *gorm.DB, e *Employee) error
	FindByID(db *gorm.DB, id string) (*Employee, error)
	ListAll(db *gorm.DB) ([]Employee, error)
	Update(db *gorm.DB, id string, changed *Employee) error
	Delete(db *gorm.DB, id string) error
	SetPresence(db *gorm.DB, id, date string, present bool) error
	SetAdvance(db *gorm.DB, id, date string, amount int) error
	RemoveAdvance(db *gorm.DB, id, date string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, e *Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Attendance == nil {
		e.Attendance = map[string]bool{}
	}
	if e.Advances == nil {
		e.Advances = map[string]int{}
	}
	return db.Create(e).Error
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id string) (*Employee, error) {
	var e Employee
	err := db.First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Employee, error) {
	var employees []Employee
	err := db.Order("date_added").Find(&employees).Error
	return employees, err
}

func (r *repositoryImpl) Update(db *gorm.DB, id string, changed *Employee) error {
	existing, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	existing.Name = changed.Name
	existing.Position = changed.Position
	existing.Phone = changed.Phone
	existing.DailySalary = changed.DailySalary
	return db.Save(existing).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&Employee{}, "id = ?", id).Error
}

func (r *repositoryImpl) SetPresence(db *gorm.DB, id, date string, present bool) error {
	existing, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if existing.Attendance == nil {
		existing.Attendance = map[string]bool{}
	}
	existing.Attendance[date] = present
	return db.Model(existing).Update("attendance", existing.Attendance).Error
}

func (r *repositoryImpl) SetAdvance(db *gorm.DB, id, date string, amount int) error {
	existing, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if existing.Advances == nil {
		existing.Advances = map[string]int{}
	}
	existing.Advances[date] = amount
	return db.Model(existing).Update("advances", existing.Advances).Error
}

func (r *repositoryImpl) RemoveAdvance(db *gorm.DB, id, date string) error {
	existing, err := r.FindByID(db, id)
	if err != nil {
		return err
	}
	if _, ok := existing.Advances[date]; !ok {
		return fmt.Errorf("%w for %s", ErrAdvanceNotFound, date)
	}
	delete(existing.Advances, date)
	return db.Model(existing).Update("advances", existing.Advances).Error
}
