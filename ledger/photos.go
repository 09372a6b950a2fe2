package ledger

import (
	"bytes"
	"errors"
	"time"

	"alota/models"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

// PhotoInfo is photo metadata without the image bytes, for listings.
type PhotoInfo struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
	HasThumb   bool      `json:"has_thumb"`
}

// AttachPhoto stores an image blob against a note. Photos only carry
// meaning on Maintenance Needed notes, but the store keeps whatever the
// caller sends; the UI owns that rule. A thumbnail is generated when the
// bytes decode as an image, and skipped quietly when they do not.
func (s *Store) AttachPhoto(noteID uint, data []byte, filename string) (uint, error) {
	if len(data) == 0 {
		return 0, invalidf("photo_data", "required")
	}
	n, err := s.getNote(s.db, noteID)
	if err != nil {
		return 0, err
	}
	p := models.Photo{
		NoteID:     noteID,
		PropertyID: n.PropertyID,
		PhotoData:  data,
		Thumb:      makeThumb(data),
		Filename:   filename,
		UploadDate: time.Now(),
	}
	if err := s.db.Create(&p).Error; err != nil {
		return 0, storeErr("attach photo", err)
	}
	return p.ID, nil
}

// PhotosForNote lists photo metadata for a note, oldest upload first.
func (s *Store) PhotosForNote(noteID uint) ([]PhotoInfo, error) {
	var infos []PhotoInfo
	err := s.db.Table("maintenance_photos").
		Select("id, filename, upload_date, thumb IS NOT NULL AS has_thumb").
		Where("note_id = ?", noteID).
		Order("upload_date").
		Scan(&infos).Error
	if err != nil {
		return nil, storeErr("list photos", err)
	}
	return infos, nil
}

// GetPhoto loads one photo including its blob.
func (s *Store) GetPhoto(id uint) (*models.Photo, error) {
	var p models.Photo
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "photo", ID: id}
		}
		return nil, storeErr("load photo", err)
	}
	return &p, nil
}

// makeThumb renders a bounded JPEG rendition of the image, or nil when
// the bytes are not a decodable image.
func makeThumb(data []byte) []byte {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	small := imaging.Fit(img, 320, 320, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, small, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil
	}
	return buf.Bytes()
}
