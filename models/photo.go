package models

import "time"

// Photo is an image attached to a note, stored whole as a blob. Thumb is
// a bounded-size JPEG rendition generated at attach time; it is nil when
// the uploaded bytes could not be decoded as an image.
type Photo struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	NoteID     uint      `gorm:"index;not null"`
	PropertyID uint      `gorm:"index;not null"`
	PhotoData  []byte    `gorm:"not null"`
	Thumb      []byte
	Filename   string    `gorm:"size:255"`
	UploadDate time.Time `gorm:"not null"`
}

// TableName keeps the table the original tracker wrote to.
func (Photo) TableName() string {
	return "maintenance_photos"
}
