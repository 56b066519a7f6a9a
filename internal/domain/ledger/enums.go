package ledger

// AccountNature represents the normal balance side of an account
type AccountNature string

const (
	NatureDebit  AccountNature = "DEBIT"  // Balance increases with debits
	NatureCredit AccountNature = "CREDIT" // Balance increases with credits
)

// IsValid checks if the nature is a recognized AccountNature
func (n AccountNature) IsValid() bool {
	return n == NatureDebit || n == NatureCredit
}

// String returns the string representation
func (n AccountNature) String() string {
	return string(n)
}

// Label returns a human-readable display name
func (n AccountNature) Label() string {
	switch n {
	case NatureDebit:
		return "Debit"
	case NatureCredit:
		return "Credit"
	default:
		return "Unknown"
	}
}

// AccountType classifies an account on the financial statements
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeCOGS      AccountType = "COST_OF_GOODS_SOLD"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeCOGS, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// Label returns a human-readable display name
func (t AccountType) Label() string {
	switch t {
	case AccountTypeAsset:
		return "Asset"
	case AccountTypeLiability:
		return "Liability"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeIncome:
		return "Income"
	case AccountTypeCOGS:
		return "Cost of Goods Sold"
	case AccountTypeExpense:
		return "Expense"
	default:
		return "Unknown"
	}
}

// Nature returns the normal balance side implied by the account type
func (t AccountType) Nature() AccountNature {
	switch t {
	case AccountTypeAsset, AccountTypeExpense, AccountTypeCOGS:
		return NatureDebit
	default:
		return NatureCredit
	}
}

// IsIncomeStatement returns true for types that appear on the profit and loss statement
func (t AccountType) IsIncomeStatement() bool {
	return t == AccountTypeIncome || t == AccountTypeCOGS || t == AccountTypeExpense
}

// PLSection classifies an income-statement account into a report section
type PLSection string

const (
	PLSectionRevenue          PLSection = "REVENUE"
	PLSectionCOGS             PLSection = "COGS"
	PLSectionOperatingExpense PLSection = "OPERATING_EXPENSE"
	PLSectionDepreciation     PLSection = "DEPRECIATION_AMORTIZATION"
	PLSectionOtherIncome      PLSection = "OTHER_INCOME"
	PLSectionOtherExpense     PLSection = "OTHER_EXPENSE"
	PLSectionTaxExpense       PLSection = "TAX_EXPENSE"
	PLSectionNone             PLSection = "NONE" // Balance sheet accounts
)

// IsValid checks if the section is valid
func (s PLSection) IsValid() bool {
	switch s {
	case PLSectionRevenue, PLSectionCOGS, PLSectionOperatingExpense, PLSectionDepreciation,
		PLSectionOtherIncome, PLSectionOtherExpense, PLSectionTaxExpense, PLSectionNone:
		return true
	}
	return false
}

// String returns the string representation
func (s PLSection) String() string {
	return string(s)
}

// Title returns the section heading shown on the profit and loss statement
func (s PLSection) Title() string {
	switch s {
	case PLSectionRevenue:
		return "Revenue"
	case PLSectionCOGS:
		return "Cost of Goods Sold"
	case PLSectionOperatingExpense:
		return "Operating Expenses"
	case PLSectionDepreciation:
		return "Depreciation & Amortization"
	case PLSectionOtherIncome:
		return "Other Income"
	case PLSectionOtherExpense:
		return "Other Expenses"
	case PLSectionTaxExpense:
		return "Tax Expense"
	default:
		return "Uncategorized"
	}
}

// DrCrType marks a journal line as a debit or a credit
type DrCrType string

const (
	DrCrDebit  DrCrType = "DEBIT"
	DrCrCredit DrCrType = "CREDIT"
)

// IsValid checks if the value is a valid DrCrType
func (d DrCrType) IsValid() bool {
	return d == DrCrDebit || d == DrCrCredit
}

// String returns the string representation
func (d DrCrType) String() string {
	return string(d)
}

// Opposite returns the other posting side, used when building reversals
func (d DrCrType) Opposite() DrCrType {
	if d == DrCrDebit {
		return DrCrCredit
	}
	return DrCrDebit
}

// TransactionStatus represents the workflow state of a voucher
type TransactionStatus string

const (
	StatusDraft           TransactionStatus = "DRAFT"            // Editable, not yet submitted
	StatusPendingApproval TransactionStatus = "PENDING_APPROVAL" // Awaiting approval
	StatusPosted          TransactionStatus = "POSTED"           // Final, included in reports
	StatusRejected        TransactionStatus = "REJECTED"         // Sent back, editable again
)

// IsValid checks if the status is a valid TransactionStatus
func (s TransactionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusPosted, StatusRejected:
		return true
	}
	return false
}

// String returns the string representation
func (s TransactionStatus) String() string {
	return string(s)
}

// Label returns a human-readable display name
func (s TransactionStatus) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusPendingApproval:
		return "Pending Approval"
	case StatusPosted:
		return "Posted"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// CanSubmit returns true if the voucher can be submitted for approval
func (s TransactionStatus) CanSubmit() bool {
	return s == StatusDraft || s == StatusRejected
}

// CanApprove returns true if the voucher can be approved or rejected
func (s TransactionStatus) CanApprove() bool {
	return s == StatusPendingApproval
}

// CanEdit returns true if voucher contents may still be modified
func (s TransactionStatus) CanEdit() bool {
	return s == StatusDraft || s == StatusRejected
}

// IsPosted returns true if the voucher is final
func (s TransactionStatus) IsPosted() bool {
	return s == StatusPosted
}

// VoucherType categorizes the business source of a voucher
type VoucherType string

const (
	VoucherTypeGeneral  VoucherType = "GENERAL"
	VoucherTypeSales    VoucherType = "SALES"
	VoucherTypePurchase VoucherType = "PURCHASE"
	VoucherTypeReceipt  VoucherType = "RECEIPT"
	VoucherTypePayment  VoucherType = "PAYMENT"
	VoucherTypeContra   VoucherType = "CONTRA"
)

// IsValid checks if the voucher type is valid
func (t VoucherType) IsValid() bool {
	switch t {
	case VoucherTypeGeneral, VoucherTypeSales, VoucherTypePurchase,
		VoucherTypeReceipt, VoucherTypePayment, VoucherTypeContra:
		return true
	}
	return false
}

// String returns the string representation
func (t VoucherType) String() string {
	return string(t)
}
