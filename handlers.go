package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alota/ledger"
	"alota/models"
	"alota/pkg/report"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine, s *ledger.Store) {
	r.POST("/login", loginHandler(s))

	api := r.Group("/api", jwtAuthMiddleware())
	api.GET("/properties", listPropertiesHandler(s))
	api.POST("/properties", addPropertyHandler(s))
	api.GET("/tenants", listTenantsHandler(s))
	api.POST("/tenants", addTenantHandler(s))
	api.PUT("/tenants/:id", updateTenantHandler(s))
	api.DELETE("/tenants/:id", deleteTenantHandler(s))
	api.GET("/payments", listPaymentsHandler(s))
	api.POST("/payments", recordPaymentHandler(s))
	api.GET("/expenses", listExpensesHandler(s))
	api.POST("/expenses", upsertExpenseHandler(s))
	api.GET("/notes", listNotesHandler(s))
	api.POST("/notes", addNoteHandler(s))
	api.PUT("/notes/:id", editNoteHandler(s))
	api.DELETE("/notes/:id", deleteNoteHandler(s))
	api.GET("/notes/:id/photos", listPhotosHandler(s))
	api.POST("/notes/:id/photos", attachPhotoHandler(s))
	api.GET("/photos/:id", getPhotoHandler(s))
	api.GET("/dashboard", dashboardHandler(s))
	api.GET("/reports/monthly", monthlyReportHandler(s))
	api.GET("/reports/promises", promisesHandler(s))
	api.GET("/reports/expense-trend", expenseTrendHandler(s))
	api.GET("/search/tenants", searchTenantsHandler(s))
	api.GET("/search/payments", searchPaymentsHandler(s))
}

// respondErr maps the ledger error taxonomy onto HTTP statuses.
func respondErr(c *gin.Context, err error) {
	var ve *ledger.ValidationError
	var nf *ledger.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func idParam(c *gin.Context) (uint, bool) {
	v, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

// propertyFilter reads the optional ?property_id= query ("all properties"
// when absent).
func propertyFilter(c *gin.Context) (*uint, bool) {
	raw := c.Query("property_id")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid property_id"})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// currentMonth yields the billing-period label for today, e.g. "Feb 2026".
func currentMonth() string {
	return time.Now().Format("Jan 2006")
}

func listPropertiesHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		props, err := s.ListProperties()
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, props)
	}
}

func addPropertyHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name       string `json:"name" binding:"required"`
			TotalUnits int    `json:"total_units" binding:"required"`
			Location   string `json:"location"`
			Address    string `json:"address"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := s.AddProperty(req.Name, req.TotalUnits, req.Location, req.Address)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func listTenantsHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		tenants, err := s.ListTenants(propID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tenants)
	}
}

func addTenantHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PropertyID uint    `json:"property_id" binding:"required"`
			Name       string  `json:"name"`
			Unit       string  `json:"unit"`
			Rent       float64 `json:"rent"`
			Email      string  `json:"email"`
			Phone      string  `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		id, err := s.AddTenant(req.PropertyID, req.Name, req.Unit, req.Rent, req.Email, req.Phone)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func updateTenantHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			Name  string  `json:"name"`
			Unit  string  `json:"unit"`
			Rent  float64 `json:"rent"`
			Email string  `json:"email"`
			Phone string  `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err := s.UpdateTenant(id, ledger.TenantUpdate{
			Name:  req.Name,
			Unit:  req.Unit,
			Rent:  req.Rent,
			Email: req.Email,
			Phone: req.Phone,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "tenant updated"})
	}
}

func deleteTenantHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteTenant(id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "tenant deleted"})
	}
}

func listPaymentsHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		rows, err := s.ListPayments(propID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func recordPaymentHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TenantID    uint    `json:"tenant_id" binding:"required"`
			PaymentDate string  `json:"payment_date"` // YYYY-MM-DD, defaults to today
			MonthYear   string  `json:"month_year" binding:"required"`
			Amount      float64 `json:"amount"`
			Method      string  `json:"method" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date := time.Now()
		if req.PaymentDate != "" {
			parsed, err := time.Parse("2006-01-02", req.PaymentDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "payment_date must be YYYY-MM-DD"})
				return
			}
			date = parsed
		}
		id, err := s.RecordPayment(req.TenantID, date, req.MonthYear, req.Amount, models.PaymentMethod(req.Method))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func listExpensesHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		expenses, err := s.ListExpenses(propID, c.Query("month_year"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func upsertExpenseHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PropertyID       uint    `json:"property_id" binding:"required"`
			MonthYear        string  `json:"month_year" binding:"required"`
			Garden           float64 `json:"garden"`
			Electrical       float64 `json:"electrical"`
			OtherMaintenance float64 `json:"other_maintenance"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		err := s.UpsertExpense(req.PropertyID, req.MonthYear, req.Garden, req.Electrical, req.OtherMaintenance)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "expenses saved"})
	}
}

func listNotesHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		rows, err := s.ListNotes(propID, models.NoteType(c.Query("type")))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func addNoteHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TenantID     uint   `json:"tenant_id" binding:"required"`
			NoteType     string `json:"note_type" binding:"required"`
			NoteText     string `json:"note_text"`
			PromisedDate string `json:"promised_date"` // YYYY-MM-DD, Payment Excuse only
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var promised *time.Time
		if req.PromisedDate != "" {
			parsed, err := time.Parse("2006-01-02", req.PromisedDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "promised_date must be YYYY-MM-DD"})
				return
			}
			promised = &parsed
		}
		id, err := s.AddNote(req.TenantID, models.NoteType(req.NoteType), req.NoteText, promised)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

func editNoteHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			NoteText string `json:"note_text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := s.EditNoteText(id, req.NoteText); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "note updated"})
	}
}

func deleteNoteHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteNote(id); err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "note deleted"})
	}
}

func listPhotosHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		infos, err := s.PhotosForNote(id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, infos)
	}
}

func attachPhotoHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
			return
		}
		if file.Size > 10*1024*1024 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 10MB)"})
			return
		}
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read failed"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "read failed"})
			return
		}
		photoID, err := s.AttachPhoto(id, data, file.Filename)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": photoID})
	}
}

func getPhotoHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		photo, err := s.GetPhoto(id)
		if err != nil {
			respondErr(c, err)
			return
		}
		data := photo.PhotoData
		if c.Query("thumb") == "1" && photo.Thumb != nil {
			data = photo.Thumb
		}
		c.Data(http.StatusOK, http.DetectContentType(data), data)
	}
}

func dashboardHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		monthYear := c.Query("month_year")
		if monthYear == "" {
			monthYear = currentMonth()
		}
		props, err := s.ListProperties()
		if err != nil {
			respondErr(c, err)
			return
		}
		summaries := make([]report.Summary, 0, len(props))
		for _, p := range props {
			pid := p.ID
			tenants, err := s.ListTenants(&pid)
			if err != nil {
				respondErr(c, err)
				return
			}
			payments, err := s.PaymentsForPeriod(&pid, monthYear)
			if err != nil {
				respondErr(c, err)
				return
			}
			expense, err := s.ExpenseForPeriod(pid, monthYear)
			if err != nil {
				respondErr(c, err)
				return
			}
			summaries = append(summaries, report.PropertySummary(p, tenants, payments, expense, monthYear))
		}
		c.JSON(http.StatusOK, gin.H{
			"month_year": monthYear,
			"properties": summaries,
			"grand":      report.Grand(summaries),
		})
	}
}

func monthlyReportHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		monthYear := c.Query("month_year")
		if monthYear == "" {
			monthYear = currentMonth()
		}
		tenants, err := s.ListTenants(propID)
		if err != nil {
			respondErr(c, err)
			return
		}
		payments, err := s.PaymentsForPeriod(propID, monthYear)
		if err != nil {
			respondErr(c, err)
			return
		}
		rows := report.MonthlyRows(tenants, payments, monthYear)
		if c.Query("format") == "csv" {
			writeReportCSV(c, monthYear, rows)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"month_year": monthYear,
			"rows":       rows,
			"totals":     report.ReportTotals(rows),
		})
	}
}

// writeReportCSV streams the monthly report as a download, one line per
// tenant, matching the dashboard's export columns.
func writeReportCSV(c *gin.Context, monthYear string, rows []report.MonthlyRow) {
	filename := fmt.Sprintf("rent_report_%s.csv", strings.ReplaceAll(monthYear, " ", "_"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv")
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "name", "unit", "rent", "phone", "email", "total_paid", "balance", "status", "month_year"})
	for _, r := range rows {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(r.TenantID), 10),
			r.Name,
			r.Unit,
			strconv.FormatFloat(r.Rent, 'f', 2, 64),
			r.Phone,
			r.Email,
			strconv.FormatFloat(r.TotalPaid, 'f', 2, 64),
			strconv.FormatFloat(r.Balance, 'f', 2, 64),
			r.Status,
			monthYear,
		})
	}
	w.Flush()
}

// promiseAlert is one row of the payment-promise overview.
type promiseAlert struct {
	TenantName   string `json:"tenant_name"`
	Unit         string `json:"unit"`
	PromisedDate string `json:"promised_date"`
	Status       string `json:"status"`
	DaysDiff     int    `json:"days_diff"`
	HighPriority bool   `json:"high_priority"`
	NoteType     string `json:"note_type"`
	Excerpt      string `json:"excerpt"`
}

func promisesHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		notes, err := s.ListNotes(propID, "")
		if err != nil {
			respondErr(c, err)
			return
		}
		today := time.Now()
		alerts := make([]promiseAlert, 0)
		for _, n := range notes {
			promised, found := report.ExtractPromiseDate(n.NoteText)
			if !found {
				continue
			}
			st := report.ClassifyPromise(promised, today)
			alerts = append(alerts, promiseAlert{
				TenantName:   n.TenantName,
				Unit:         n.Unit,
				PromisedDate: promised.Format("2006-01-02"),
				Status:       st.Label,
				DaysDiff:     st.DaysDiff,
				HighPriority: st.HighPriority,
				NoteType:     string(n.NoteType),
				Excerpt:      excerpt(n.NoteText, 100),
			})
		}
		c.JSON(http.StatusOK, alerts)
	}
}

func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func expenseTrendHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		propID, ok := propertyFilter(c)
		if !ok {
			return
		}
		if propID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "property_id is required"})
			return
		}
		expenses, err := s.ListExpenses(propID, "")
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, report.ExpenseTrend(expenses))
	}
}

func searchTenantsHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		tenants, err := s.SearchTenants(term)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tenants)
	}
}

func searchPaymentsHandler(s *ledger.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("q")
		if term == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		rows, err := s.SearchPayments(term)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
