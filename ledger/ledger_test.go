package ledger

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"alota/models"
	"alota/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, s.Migrate())
	return s
}

func newProperty(t *testing.T, s *Store, units int) uint {
	t.Helper()
	id, err := s.AddProperty("Unit A", units, "Testville", "1 Test Road")
	require.NoError(t, err)
	return id
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate())

	var applied []schemaMigration
	require.NoError(t, s.db.Order("version").Find(&applied).Error)
	require.Len(t, applied, len(migrationSteps))
	for i, m := range applied {
		assert.Equal(t, migrationSteps[i].version, m.Version)
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Seed())
	require.NoError(t, s.Seed())

	props, err := s.ListProperties()
	require.NoError(t, err)
	assert.Len(t, props, 7)

	user, err := s.UserByUsername("landlord")
	require.NoError(t, err)
	assert.NotEmpty(t, user.HashedPassword)
}

func TestAddTenantValidation(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)

	_, err := s.AddTenant(propID, "", "1A", 1000, "", "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Field)

	_, err = s.AddTenant(propID, "Jane", "1A", 0, "", "")
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rent", ve.Field)

	_, err = s.AddTenant(999, "Jane", "1A", 1000, "", "")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	tenants, err := s.ListTenants(&propID)
	require.NoError(t, err)
	assert.Empty(t, tenants, "failed validation must not write")
}

func TestUpdateTenant(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	id, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)

	err = s.UpdateTenant(id, TenantUpdate{Name: "Jane Doe", Unit: "1B", Rent: 1200, Phone: "+27831234567"})
	require.NoError(t, err)

	got, err := s.GetTenant(id)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "1B", got.Unit)
	assert.Equal(t, 1200.0, got.Rent)

	err = s.UpdateTenant(999, TenantUpdate{Name: "Nobody", Rent: 1})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestDeleteTenantCascades(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	victim, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)
	keeper, err := s.AddTenant(propID, "John", "2B", 900, "", "")
	require.NoError(t, err)

	for _, tenantID := range []uint{victim, keeper} {
		_, err = s.RecordPayment(tenantID, time.Now(), "Mar 2025", 500, models.MethodEFT)
		require.NoError(t, err)
		noteID, err := s.AddNote(tenantID, models.NoteMaintenance, "leaking geyser", nil)
		require.NoError(t, err)
		_, err = s.AttachPhoto(noteID, []byte("not really an image"), "leak.jpg")
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteTenant(victim))

	_, err = s.GetTenant(victim)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	var payments, notes, photos int64
	require.NoError(t, s.db.Model(&models.Payment{}).Count(&payments).Error)
	require.NoError(t, s.db.Model(&models.Note{}).Count(&notes).Error)
	require.NoError(t, s.db.Model(&models.Photo{}).Count(&photos).Error)
	assert.Equal(t, int64(1), payments, "keeper's payment must survive")
	assert.Equal(t, int64(1), notes, "keeper's note must survive")
	assert.Equal(t, int64(1), photos, "keeper's photo must survive")

	require.ErrorAs(t, s.DeleteTenant(victim), &nf)
}

func TestRecordPayment(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	tenantID, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)

	_, err = s.RecordPayment(tenantID, time.Now(), "Mar 2025", 0, models.MethodCash)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = s.RecordPayment(tenantID, time.Now(), "Mar 2025", 100, "Barter")
	require.ErrorAs(t, err, &ve)

	id, err := s.RecordPayment(tenantID, time.Now(), "Mar 2025", 400, models.MethodEFT)
	require.NoError(t, err)
	assert.NotZero(t, id)

	payments, err := s.PaymentsForPeriod(&propID, "Mar 2025")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, propID, payments[0].PropertyID, "property id is copied from the tenant")
}

func TestListPaymentsJoined(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	tenantID, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)

	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	_, err = s.RecordPayment(tenantID, older, "Mar 2025", 400, models.MethodEFT)
	require.NoError(t, err)
	_, err = s.RecordPayment(tenantID, newer, "Mar 2025", 300, models.MethodCash)
	require.NoError(t, err)

	rows, err := s.ListPayments(&propID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane", rows[0].TenantName)
	assert.Equal(t, "1A", rows[0].Unit)
	assert.True(t, !rows[0].PaymentDate.Before(rows[1].PaymentDate), "newest payment first")

	found, err := s.SearchPayments("Mar 2025")
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestUpsertExpenseIdempotentKey(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)

	require.NoError(t, s.UpsertExpense(propID, "Feb 2025", 100, 50, 0))
	require.NoError(t, s.UpsertExpense(propID, "Feb 2025", 120, 60, 10))

	rows, err := s.ListExpenses(&propID, "Feb 2025")
	require.NoError(t, err)
	require.Len(t, rows, 1, "second write must overwrite, never duplicate")
	assert.Equal(t, 120.0, rows[0].Garden)
	assert.Equal(t, 60.0, rows[0].Electrical)
	assert.Equal(t, 10.0, rows[0].OtherMaintenance)

	err = s.UpsertExpense(propID, "Feb 2025", -1, 0, 0)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestAddNoteAppendsPromiseMarker(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	tenantID, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)

	promised := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	id, err := s.AddNote(tenantID, models.NotePaymentExcuse, "Will pay soon", &promised)
	require.NoError(t, err)

	rows, err := s.ListNotes(&propID, models.NotePaymentExcuse)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].ID)

	got, found := report.ExtractPromiseDate(rows[0].NoteText)
	require.True(t, found)
	assert.Equal(t, promised, got)

	// Promised dates on other note types are ignored.
	_, err = s.AddNote(tenantID, models.NoteLatePayment, "Second notice", &promised)
	require.NoError(t, err)
	rows, err = s.ListNotes(&propID, models.NoteLatePayment)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	_, found = report.ExtractPromiseDate(rows[0].NoteText)
	assert.False(t, found)
}

func TestEditAndDeleteNote(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	tenantID, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)
	noteID, err := s.AddNote(tenantID, models.NoteMaintenance, "broken window", nil)
	require.NoError(t, err)
	_, err = s.AttachPhoto(noteID, []byte("blob"), "window.jpg")
	require.NoError(t, err)

	require.NoError(t, s.EditNoteText(noteID, "broken window, glazier booked"))
	rows, err := s.ListNotes(&propID, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "broken window, glazier booked", rows[0].NoteText)
	assert.Equal(t, 1, rows[0].PhotoCount)

	require.NoError(t, s.DeleteNote(noteID))
	var photos int64
	require.NoError(t, s.db.Model(&models.Photo{}).Count(&photos).Error)
	assert.Zero(t, photos)

	var nf *NotFoundError
	require.ErrorAs(t, s.DeleteNote(noteID), &nf)
}

func TestAttachPhoto(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	tenantID, err := s.AddTenant(propID, "Jane", "1A", 1000, "", "")
	require.NoError(t, err)
	noteID, err := s.AddNote(tenantID, models.NoteMaintenance, "damp patch", nil)
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	photoID, err := s.AttachPhoto(noteID, buf.Bytes(), "damp.png")
	require.NoError(t, err)

	photo, err := s.GetPhoto(photoID)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), photo.PhotoData)
	assert.Equal(t, propID, photo.PropertyID)
	assert.NotEmpty(t, photo.Thumb, "decodable image gets a thumbnail")

	// Non-image bytes are still stored, just without a thumbnail.
	rawID, err := s.AttachPhoto(noteID, []byte("definitely not an image"), "scan.bin")
	require.NoError(t, err)
	raw, err := s.GetPhoto(rawID)
	require.NoError(t, err)
	assert.Empty(t, raw.Thumb)

	infos, err := s.PhotosForNote(noteID)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "damp.png", infos[0].Filename)
}

func TestSearchTenants(t *testing.T) {
	s := newTestStore(t)
	propID := newProperty(t, s, 4)
	_, err := s.AddTenant(propID, "Jane Smith", "1A", 1000, "", "")
	require.NoError(t, err)
	_, err = s.AddTenant(propID, "John Brown", "2B", 900, "", "")
	require.NoError(t, err)

	found, err := s.SearchTenants("Smith")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Jane Smith", found[0].Name)

	found, err = s.SearchTenants("2B")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "John Brown", found[0].Name)
}
