package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TutorProfile struct {
	UserID                 uuid.UUID                   `gorm:"primary_key" json:"user_id"`
	Headline               *string                     `gorm:"size:255" json:"headline"`
	SubjectMatterExpertise datatypes.JSONSlice[string] `json:"subject_matter_expertise"`
	DescriptionOfExpertise *string                     `gorm:"type:text" json:"description_of_expertise"`
	TeachingStyle          *string                     `gorm:"size:255" json:"teaching_style"`
	YearsOfExperience      int                         `gorm:"default:0" json:"years_of_experience"`

	// Students this tutor may message even without a booking.
	AssignedStudentIDs datatypes.JSONSlice[string] `json:"assigned_student_ids"`

	User      User      `gorm:"foreignkey:UserID" json:"user"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (p *TutorProfile) HasAssignedStudent(studentID uuid.UUID) bool {
	for _, id := range p.AssignedStudentIDs {
		if id == studentID.String() {
			return true
		}
	}
	return false
}
