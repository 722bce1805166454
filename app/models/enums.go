package models

// FeeStatus defines the lifecycle of a fee obligation. It is always derived
// from paid_amount vs total_amount, never set directly after creation.
type FeeStatus string

const (
	FeePending FeeStatus = "pending"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

// CanReceivePayment reports whether a fee in this status may still be
// selected as the target of an incoming payment.
func (s FeeStatus) CanReceivePayment() bool {
	return s == FeePending || s == FeePartial
}

// LeadStatus defines the pipeline stages of an enquiry.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadTrial     LeadStatus = "trial"
	LeadConverted LeadStatus = "converted"
	LeadLost      LeadStatus = "lost"
)

// IsValid checks if the status is a known pipeline stage.
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadTrial, LeadConverted, LeadLost:
		return true
	}
	return false
}

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// IsValid checks if the value is a known attendance status.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case Present, Absent, Late, Excused:
		return true
	}
	return false
}

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// IsValid checks if the value is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// DayOfWeek defines the days of the week for class schedules.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)
