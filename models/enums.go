package models

// PaymentMethod is how a payment arrived.
type PaymentMethod string

const (
	MethodEFT      PaymentMethod = "EFT"
	MethodCash     PaymentMethod = "Cash"
	MethodSnapScan PaymentMethod = "SnapScan"
	MethodOther    PaymentMethod = "Other"
)

// Valid reports whether m is one of the known methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodEFT, MethodCash, MethodSnapScan, MethodOther:
		return true
	}
	return false
}

// NoteType classifies a tenant note.
type NoteType string

const (
	NotePaymentExcuse NoteType = "Payment Excuse"
	NoteMaintenance   NoteType = "Maintenance Needed"
	NoteLatePayment   NoteType = "Late Payment Notice"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NotePaymentExcuse, NoteMaintenance, NoteLatePayment:
		return true
	}
	return false
}
