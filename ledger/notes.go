package ledger

import (
	"errors"
	"strings"
	"time"

	"alota/models"
	"alota/pkg/report"

	"gorm.io/gorm"
)

// NoteRow is a note joined with the tenant's display fields plus the
// number of attached photos.
type NoteRow struct {
	ID         uint            `json:"id"`
	TenantID   uint            `json:"tenant_id"`
	PropertyID uint            `json:"property_id"`
	NoteDate   time.Time       `json:"note_date"`
	NoteType   models.NoteType `json:"note_type"`
	NoteText   string          `json:"note_text"`
	TenantName string          `json:"tenant_name"`
	Unit       string          `json:"unit"`
	PhotoCount int             `json:"photo_count"`
}

// AddNote records a note against a tenant. For a Payment Excuse with a
// promised date, the canonical promise marker is appended to the stored
// text; that marker is the only encoding of the promise.
func (s *Store) AddNote(tenantID uint, noteType models.NoteType, text string, promisedDate *time.Time) (uint, error) {
	if !noteType.Valid() {
		return 0, invalidf("note_type", "unknown note type %q", noteType)
	}
	if strings.TrimSpace(text) == "" {
		return 0, invalidf("note_text", "required")
	}
	t, err := s.getTenant(s.db, tenantID)
	if err != nil {
		return 0, err
	}
	if noteType == models.NotePaymentExcuse && promisedDate != nil {
		text = report.AppendPromise(text, *promisedDate)
	}
	n := models.Note{
		TenantID:   tenantID,
		PropertyID: t.PropertyID,
		NoteDate:   time.Now(),
		NoteType:   noteType,
		NoteText:   text,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return 0, storeErr("add note", err)
	}
	return n.ID, nil
}

// EditNoteText replaces the text of an existing note.
func (s *Store) EditNoteText(noteID uint, newText string) error {
	if strings.TrimSpace(newText) == "" {
		return invalidf("note_text", "required")
	}
	n, err := s.getNote(s.db, noteID)
	if err != nil {
		return err
	}
	if err := s.db.Model(n).Update("note_text", newText).Error; err != nil {
		return storeErr("edit note", err)
	}
	return nil
}

// DeleteNote removes a note and its photos in one transaction.
func (s *Store) DeleteNote(noteID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getNote(tx, noteID); err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&models.Photo{}).Error; err != nil {
			return storeErr("delete note photos", err)
		}
		if err := tx.Delete(&models.Note{}, noteID).Error; err != nil {
			return storeErr("delete note", err)
		}
		return nil
	})
}

// ListNotes returns notes joined with tenant name and unit, newest first,
// optionally restricted to one property and one note type.
func (s *Store) ListNotes(propertyID *uint, typeFilter models.NoteType) ([]NoteRow, error) {
	q := s.db.Table("notes").
		Select(`notes.id, notes.tenant_id, notes.property_id, notes.note_date,
			notes.note_type, notes.note_text,
			tenants.name AS tenant_name, tenants.unit AS unit,
			(SELECT COUNT(*) FROM maintenance_photos WHERE maintenance_photos.note_id = notes.id) AS photo_count`).
		Joins("JOIN tenants ON tenants.id = notes.tenant_id")
	if propertyID != nil {
		q = q.Where("notes.property_id = ?", *propertyID)
	}
	if typeFilter != "" {
		q = q.Where("notes.note_type = ?", typeFilter)
	}
	var rows []NoteRow
	if err := q.Order("notes.note_date DESC").Scan(&rows).Error; err != nil {
		return nil, storeErr("list notes", err)
	}
	return rows, nil
}

func (s *Store) getNote(db *gorm.DB, id uint) (*models.Note, error) {
	var n models.Note
	if err := db.First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "note", ID: id}
		}
		return nil, storeErr("load note", err)
	}
	return &n, nil
}
