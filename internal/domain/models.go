package domain

import "time"

// Enumerations
const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"

	TransactionTithe    TransactionType = "Tithe"
	TransactionOffering TransactionType = "Offering"
	TransactionDonation TransactionType = "Donation"
	TransactionExpense  TransactionType = "Expense"

	StatusProcessed TransactionStatus = "Processed"
	StatusPending   TransactionStatus = "Pending"
	StatusFailed    TransactionStatus = "Failed"

	PayrollPending PayrollStatus = "Pending"
	PayrollPaid    PayrollStatus = "Paid"

	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

type UserRole string
type TransactionType string
type TransactionStatus string
type PayrollStatus string
type AttendanceStatus string

// IsIncome reports whether the type counts toward income. Everything that is
// not an expense is income.
func (t TransactionType) IsIncome() bool { return t != TransactionExpense }

type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Role         UserRole
	IsGoogle     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Transaction is a single financial movement. Amount is always a positive
// magnitude; direction is derived from Type at aggregation time.
type Transaction struct {
	ID          int64
	Date        time.Time
	Contributor string
	Type        TransactionType
	Category    string
	Amount      float64
	Description string
	Status      TransactionStatus
	ReceiptID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Staff struct {
	ID         int64
	Name       string
	Role       string
	Department string
	Phone      string
	Email      string
	ImageURL   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// PayrollRecord scopes pay to a period label such as "January 2026".
// NetPay is derived from the three inputs and never independently mutable.
type PayrollRecord struct {
	ID          int64
	StaffID     *int64
	Month       string
	BasicSalary float64
	Allowances  float64
	Deductions  float64
	NetPay      float64
	Status      PayrollStatus
	PaymentDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PayrollEntry is a payroll record joined with staff details at read time.
// Missing references degrade to placeholder labels, not errors.
type PayrollEntry struct {
	PayrollRecord
	StaffName  string
	StaffRole  string
	StaffImage *string
}

type Member struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type ChurchEvent struct {
	ID          int64
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	EndsAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// StaffAssignment links a member to a serving position for a period.
type StaffAssignment struct {
	ID         int64
	MemberID   *int64
	MemberName string
	Position   string
	StartDate  time.Time
	EndDate    *time.Time
}

type AttendanceLog struct {
	ID         int64
	MemberID   *int64
	MemberName string
	EventID    *int64
	Date       time.Time
	Status     AttendanceStatus
	Source     string
	CreatedAt  time.Time
	DeletedAt  *time.Time
}

// Settings holds the church profile stamped onto receipts and payslips.
type Settings struct {
	ChurchName    string
	ChurchAddress string
	ChurchPhone   string
	ReceiptFooter string
	CurrencyCode  string
	UpdatedAt     time.Time
}
