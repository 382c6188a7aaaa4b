package employee

import "time"

// Employee is the payroll record. Attendance and Advances are date-keyed
// maps ("2006-01-02" keys) stored as JSON columns; presence marks and salary
// advances are merged into them rather than kept in separate tables.
type Employee struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Position    string          `gorm:"not null" json:"position"`
	Phone       string          `gorm:"size:100;not null" json:"phone"`
	DailySalary int             `gorm:"not null" json:"dailySalary"`
	Attendance  map[string]bool `gorm:"serializer:json" json:"attendance"`
	Advances    map[string]int  `gorm:"serializer:json" json:"advances"`
	DateAdded   time.Time       `gorm:"autoCreateTime" json:"dateAdded"`
}
